package broadcast

import "errors"

// ErrHubClosed is returned when sending through a hub that has been shut down.
var ErrHubClosed = errors.New("broadcast: hub is closed")
