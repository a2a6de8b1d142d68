package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration     ErrorType = "CONFIGURATION"
	TypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	TypeVCS               ErrorType = "VCS"
	TypeFilesystem        ErrorType = "FILESYSTEM"
	TypeInternal          ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if path, ok := e.Context["path"].(string); ok && path != "" {
			msg += fmt.Sprintf(" - %s", path)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same type and message, so
// sentinels keep matching after WithError/WithContext copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrUnknownParser = NewAppError(TypeConfiguration, "unknown row parser", nil).
				WithSuggestion("List the available parsers with: gh-issues-importer parsers")

	ErrParserAlreadyRegistered = NewAppError(TypeConfiguration, "row parser already registered", nil)

	ErrInvalidRepository = NewAppError(TypeConfiguration, "repository must be in owner/name form", nil).
				WithSuggestion("Pass the repository as --repo owner/name")

	ErrAuthMissing = NewAppError(TypeConfiguration, "GitHub credentials are missing", nil).
			WithSuggestion("Pass --auth user:token, set GITHUB_AUTH, or add \"auth\" to the config file")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "configuration is not valid", nil)
)

// Source file errors
var (
	ErrUnsupportedFormat = NewAppError(TypeUnsupportedFormat, "unsupported file format", nil).
				WithSuggestion("Export the sheet as .tsv or .xlsx")

	ErrReadSource = NewAppError(TypeFilesystem, "failed to read source file", nil).
			WithSuggestion("Check the file exists and is readable")

	ErrReadTemplate = NewAppError(TypeFilesystem, "failed to read template file", nil).
			WithSuggestion("Check the --template path or omit it to use the bundled template")

	ErrWriteDebug = NewAppError(TypeFilesystem, "failed to write debug output", nil).
			WithSuggestion("Check you have write permissions in the working directory")
)

// GitHub/VCS errors
var (
	ErrListIssues = NewAppError(TypeVCS, "failed to list issues", nil)

	ErrCreateIssue = NewAppError(TypeVCS, "failed to create issue", nil)

	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository name and access permissions")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub credentials are invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub credentials have insufficient permissions", nil).
					WithSuggestion("The token needs the 'repo' scope (or 'public_repo' for public repositories)")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or lower --concurrency")
)
