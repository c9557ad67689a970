// Command arngll-devices lists ALSA sound-card nodes discoverable via
// udev, for an operator choosing an audio device. It never touches the
// DSP hot path.
package main

import (
	"fmt"
	"os"

	"github.com/arngll/arngll-go/internal/audioio"
	"github.com/spf13/pflag"
)

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "print vendor information")
	pflag.Parse()

	devices, err := audioio.EnumerateALSADevices()
	if err != nil {
		fmt.Fprintln(os.Stderr, "arngll-devices:", err)
		os.Exit(1)
	}
	if len(devices) == 0 {
		fmt.Println("no ALSA sound devices found")
		return
	}
	for _, d := range devices {
		if *verbose {
			fmt.Printf("%s\t%s\t%s\n", d.SysPath, d.Name, d.Vendor)
		} else {
			fmt.Printf("%s\t%s\n", d.SysPath, d.Name)
		}
	}
}
