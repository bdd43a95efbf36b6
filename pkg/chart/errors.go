package chart

// KindError is returned for an unknown chart kind, for parameters a chart can not use, or when
// a chart is applied to the wrong kind of data
type KindError struct {
	Msg string
}

func (e KindError) Error() string {
	return e.Msg
}
