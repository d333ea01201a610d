package shared

import (
	"github.com/joe/dirlist/internal/listing"
)

// ListingLoadedMsg carries a finished directory listing back to the browser.
type ListingLoadedMsg struct {
	Result *listing.Result
}
