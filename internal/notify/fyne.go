package notify

import "fyne.io/fyne/v2"

// FynePoster posts notifications through the fyne application.
type FynePoster struct {
	app fyne.App
}

// NewFynePoster wraps app.
func NewFynePoster(app fyne.App) *FynePoster {
	return &FynePoster{app: app}
}

// Post implements Poster. fyne gives no delivery result, so a denied
// permission is indistinguishable from success here.
func (poster *FynePoster) Post(title, body string) error {
	notification := fyne.NewNotification(title, body)
	fyne.Do(func() {
		poster.app.SendNotification(notification)
	})
	return nil
}
