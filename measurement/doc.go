// Package measurement provides measured samples and their uncertainties.
//
// A Sample holds paired x and y observations with optional uncertainties on
// either axis. Uncertainties are a tagged variant: absent, a single scalar
// broadcast to every point, or one value per point.
//
// # Creating a Sample
//
//	s, err := measurement.New(x, y)
//	s.YErr = measurement.Scalar(0.05)
//	s.XErr = measurement.PerPoint([]float64{0.1, 0.1, 0.2})
//	if err := s.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Loading from CSV
//
// Load a measurement table with x, y and optional error columns:
//
//	s, err := measurement.LoadCSV("iv.csv", nil)
//
//	opts := measurement.DefaultCSVOptions()
//	opts.XColumn = "U"
//	opts.YColumn = "I"
//	opts.YErrColumn = "dI"
//	s, err = measurement.LoadCSV("iv.csv", opts)
package measurement
