package controller

// View is the message pair shown under a form. At most one of the two is set.
type View struct {
	Message      string `json:"message"`
	ErrorMessage string `json:"errorMessage"`
}

func (v *View) succeed(message string) {
	v.Message = message
	v.ErrorMessage = ""
}

func (v *View) fail(errorMessage string) {
	v.Message = ""
	v.ErrorMessage = errorMessage
}
