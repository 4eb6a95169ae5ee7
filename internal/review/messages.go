package review

import (
	"fmt"

	"github.com/kapu/figures-review-go/pkg/errors"
)

const (
	msgMarkedPosted      = "Marked as posted and removed from list."
	msgJobQueued         = "Monthly figures job queued. Pull data to see updates."
	msgCopied            = "Copied to clipboard."
	msgCopyDenied        = "Unable to copy. Clipboard access was denied."
	msgMissingJobFields  = "Month and field of excellence are required."
	msgMissingRecordID   = "Selected record has no id."
	msgLoadPersonalities = "Unable to load personalities"
	msgLoadFigures       = "Unable to load prominent figures"
	msgLoadMonthly       = "Unable to pull monthly figures"
	msgLoadVideos        = "Unable to load videos"
	msgLoadRawPost       = "Unable to load raw post"
	msgMarkPosted        = "Unable to mark as posted"
	msgQueueJob          = "Unable to queue job"
)

// failureMessage renders "<prefix> (<status>)." for server errors and
// "<prefix>." otherwise.
func failureMessage(prefix string, err error) string {
	if status := errors.StatusCode(err); status != 0 {
		return fmt.Sprintf("%s (%d).", prefix, status)
	}
	return prefix + "."
}

func MessageLoadPersonalities(err error) string { return failureMessage(msgLoadPersonalities, err) }
func MessageLoadFigures(err error) string       { return failureMessage(msgLoadFigures, err) }
func MessageLoadMonthly(err error) string       { return failureMessage(msgLoadMonthly, err) }
func MessageLoadVideos(err error) string        { return failureMessage(msgLoadVideos, err) }
func MessageLoadRawPost(err error) string       { return failureMessage(msgLoadRawPost, err) }

// CopyMessage reports the outcome of a clipboard write.
func CopyMessage(err error) string {
	if err != nil {
		return msgCopyDenied
	}
	return msgCopied
}
