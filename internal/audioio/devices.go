package audioio

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// Device describes one ALSA sound-card node discovered on the system,
// for cmd/arngll-devices' listing tool. This walk never touches the
// per-sample hot loop; it is discovery tooling only, per spec.md §6.
type Device struct {
	SysPath string
	Name    string
	Vendor  string
}

// EnumerateALSADevices walks udev's "sound" subsystem and returns every
// matching card node, grounded on the teacher's absence of any
// equivalent (Direwolf relies on the OS's own `arecord -l`); this
// adapts go-udev's enumerate API the way the teacher adapts cgo
// wrappers around other system libraries.
func EnumerateALSADevices() ([]Device, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("sound"); err != nil {
		return nil, fmt.Errorf("audioio: match sound subsystem: %w", err)
	}
	devices, err := e.Devices()
	if err != nil {
		return nil, fmt.Errorf("audioio: enumerate: %w", err)
	}

	out := make([]Device, 0, len(devices))
	for _, d := range devices {
		out = append(out, Device{
			SysPath: d.Syspath(),
			Name:    d.PropertyValue("ID_MODEL"),
			Vendor:  d.PropertyValue("ID_VENDOR"),
		})
	}
	return out, nil
}
