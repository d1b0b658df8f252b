package ai

import "errors"

// ErrServiceUnavailable indicates a transport or provider failure while
// calling the analysis service. Fatal for the request; no retry.
var ErrServiceUnavailable = errors.New("analysis service unavailable")

// ErrAnalysisParse indicates the analysis service responded, but not with
// well-formed JSON matching the expected schema. Fatal for the request.
var ErrAnalysisParse = errors.New("analysis response is not valid JSON")
