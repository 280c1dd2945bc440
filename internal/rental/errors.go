package rental

import "errors"

// Sentinel errors for the session engine. The messages for busy and missing
// sessions are the literal texts shown to staff; transports map these to
// protocol codes.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDeviceBusy is returned by StartSession when the device is occupied.
	ErrDeviceBusy = errors.New("الجهاز مشغول حالياً")

	// ErrNoActiveSession is returned by EndSession on an available device.
	ErrNoActiveSession = errors.New("لا توجد جلسة جارية لهذا الجهاز")

	// ErrSessionDrift is returned when a device claims to be occupied but no
	// running session row exists. The device is still released; callers
	// surface this as a warning rather than a failure.
	ErrSessionDrift = errors.New("تم تحرير الجهاز دون العثور على سجل الجلسة")
)
