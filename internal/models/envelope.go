package models

import "fmt"

const FailureMessage = "Failed to perform operation."

// Envelope is the body of every successful response.
type Envelope struct {
	Message string `json:"message"`
	Body    any    `json:"body"`
}

func NewEnvelope(method string, body any) Envelope {
	return Envelope{
		Message: fmt.Sprintf("Successfully finished operation: %q", method),
		Body:    body,
	}
}

// ErrorEnvelope is the body of every failed response. The stack is sent to the
// caller on purpose, the frontend prints it to the console.
type ErrorEnvelope struct {
	Message    string `json:"message"`
	ErrorMsg   string `json:"errorMsg"`
	ErrorStack string `json:"errorStack"`
}

// NewErrorEnvelope renders err with its stack when one was recorded.
func NewErrorEnvelope(err error) ErrorEnvelope {
	env := ErrorEnvelope{Message: FailureMessage}
	if err == nil {
		return env
	}
	env.ErrorMsg = err.Error()
	if stack := fmt.Sprintf("%+v", err); stack != env.ErrorMsg {
		env.ErrorStack = stack
	}
	return env
}
