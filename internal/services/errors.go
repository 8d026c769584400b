package services

// Typed errors per pipeline stage. Messages are user-facing (the handler
// returns them verbatim in the error envelope), so they stay in Portuguese.

type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

type AcquisitionError struct {
	Platform string
	Message  string
}

func (e *AcquisitionError) Error() string { return e.Message }

type NormalizationError struct {
	Message string
}

func (e *NormalizationError) Error() string { return e.Message }

type TranscriptionError struct {
	Message string
	Cause   error
}

func (e *TranscriptionError) Error() string { return e.Message }

func (e *TranscriptionError) Unwrap() error { return e.Cause }

type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string { return e.Message }

func (e *ExtractionError) Unwrap() error { return e.Cause }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
