package record

// ImportError is returned when flat input arrays can not be organized into a record, such as
// times and values of different lengths or a malformed input row.
type ImportError struct {
	Msg string
}

func (e ImportError) Error() string {
	return e.Msg
}

// TimeError is returned when a time value has an unsupported type or when elapsed and absolute
// times are mixed within one record.
type TimeError struct {
	Msg string
}

func (e TimeError) Error() string {
	return e.Msg
}

// InvariantError is a violation of the data model contract: mixing variable and attribute data in
// one sample or record, an attribute value outside {0,1}, reading a statistic that is only
// defined for the other kind of data, an empty sample, or mutating a sealed record.
type InvariantError struct {
	Msg string
}

func (e InvariantError) Error() string {
	return e.Msg
}
