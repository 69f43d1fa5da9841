package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorCategory identifies the recognized failure categories of the
// retrieve-and-generate call.
type ErrorCategory int

const (
	// ErrorUnknown is any failure that matches no recognized category
	ErrorUnknown ErrorCategory = iota
	// ErrorMissingCredentials means no usable AWS credentials were found
	ErrorMissingCredentials
	// ErrorAccessDenied means the credentials lack the required permission
	ErrorAccessDenied
	// ErrorService is any other error reported by the AWS service with a code
	ErrorService
)

// ErrorKind is the classified form of a remote-call failure. The category
// selects the user-facing message; code and message carry the provider
// detail for the generic cases.
type ErrorKind struct {
	Category ErrorCategory
	Code     string
	Message  string
}

// Fixed user-facing messages for the recognized failure categories.
const (
	missingCredentialsMessage = "❌ AWS credentials not found. Please configure AWS CLI with 'aws configure' or set environment variables."
	accessDeniedMessage       = "❌ Access denied. Please ensure your AWS credentials have bedrock:RetrieveAndGenerate permissions."
)

// credential error codes returned by the service when the request is
// signed with unusable or expired credentials
var credentialErrorCodes = map[string]bool{
	"UnrecognizedClientException": true,
	"InvalidSignatureException":   true,
	"ExpiredTokenException":       true,
}

// Classify maps a remote-call error to its ErrorKind. Coded service
// errors are inspected first; credential-chain failures happen before a
// request is signed, so they carry no API error code and are matched on
// the SDK's error text.
func Classify(err error) ErrorKind {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case code == "AccessDeniedException":
			return ErrorKind{Category: ErrorAccessDenied, Code: code}
		case credentialErrorCodes[code]:
			return ErrorKind{Category: ErrorMissingCredentials, Code: code}
		default:
			return ErrorKind{Category: ErrorService, Code: code, Message: apiErr.ErrorMessage()}
		}
	}

	msg := err.Error()
	if strings.Contains(msg, "failed to retrieve credentials") ||
		strings.Contains(msg, "get credentials:") ||
		strings.Contains(msg, "no EC2 IMDS role found") ||
		strings.Contains(msg, "static credentials are empty") {
		return ErrorKind{Category: ErrorMissingCredentials, Message: msg}
	}

	return ErrorKind{Category: ErrorUnknown, Message: msg}
}

// DisplayText returns the user-facing message for this error kind. The
// service and unknown categories embed the provider detail so the caller
// can see what actually failed.
func (k ErrorKind) DisplayText() string {
	switch k.Category {
	case ErrorMissingCredentials:
		return missingCredentialsMessage
	case ErrorAccessDenied:
		return accessDeniedMessage
	case ErrorService:
		return fmt.Sprintf("❌ AWS error (%s): %s", k.Code, k.Message)
	default:
		return fmt.Sprintf("❌ Unexpected error: %s", k.Message)
	}
}
