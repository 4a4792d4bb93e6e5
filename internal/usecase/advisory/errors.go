package advisory

import (
	"errors"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
)

// UserFacingError wraps an internal failure with a short message safe
// to show a farmer. The underlying error stays reachable for logs.
type UserFacingError struct {
	Message string
	Err     error
}

func (e *UserFacingError) Error() string {
	return e.Message
}

func (e *UserFacingError) Unwrap() error {
	return e.Err
}

// Per-error-type messages, Bangla and English.
var userMessages = map[llmhttp.ErrorType][2]string{
	llmhttp.ErrTypeRateLimit:          {"সার্ভার ব্যস্ত আছে। কিছুক্ষণ পর আবার চেষ্টা করুন।", "The server is busy. Please try again shortly."},
	llmhttp.ErrTypeQuotaExhausted:     {"দৈনিক ব্যবহারসীমা শেষ হয়েছে। কিছুক্ষণ পর আবার চেষ্টা করুন।", "The daily usage limit has been reached. Please try again later."},
	llmhttp.ErrTypeServiceUnavailable: {"পরিষেবা সাময়িকভাবে বন্ধ আছে। কিছুক্ষণ পর আবার চেষ্টা করুন।", "The service is temporarily unavailable. Please try again shortly."},
	llmhttp.ErrTypeServerError:        {"পরিষেবা সাময়িকভাবে বন্ধ আছে। কিছুক্ষণ পর আবার চেষ্টা করুন।", "The service is temporarily unavailable. Please try again shortly."},
	llmhttp.ErrTypeTimeout:            {"সংযোগে সমস্যা হয়েছে। ইন্টারনেট সংযোগ পরীক্ষা করুন।", "Connection problem. Please check your internet connection."},
	llmhttp.ErrTypeContentFiltered:    {"এই অনুরোধটি প্রক্রিয়া করা সম্ভব হয়নি। অন্যভাবে জিজ্ঞাসা করুন।", "This request could not be processed. Please rephrase it."},
	llmhttp.ErrTypeAuthentication:     {"পরিষেবা কনফিগারেশনে সমস্যা আছে।", "There is a problem with the service configuration."},
}

const (
	genericMessageBN = "দুঃখিত, কিছু একটা সমস্যা হয়েছে। আবার চেষ্টা করুন।"
	genericMessageEN = "Sorry, something went wrong. Please try again."
)

// userError converts any internal error into a UserFacingError in the
// configured language. Already-converted errors pass through.
func (f *Facade) userError(err error) error {
	if err == nil {
		return nil
	}

	var already *UserFacingError
	if errors.As(err, &already) {
		return err
	}

	english := f.opts.Language == "en"
	message := genericMessageBN
	if english {
		message = genericMessageEN
	}

	var httpErr *llmhttp.Error
	if errors.As(err, &httpErr) {
		if pair, ok := userMessages[httpErr.Type]; ok {
			if english {
				message = pair[1]
			} else {
				message = pair[0]
			}
		}
	}

	return &UserFacingError{Message: message, Err: err}
}
