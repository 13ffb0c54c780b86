// Command watchlog attaches to the watch's serial debug line and prints the
// framed log stream. It can join mid-stream: the decoder discards bytes
// until the first frame boundary and resynchronizes after corruption.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tarm/serial"

	"quartz/logwire"
)

var (
	device = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate")
)

func main() {
	flag.Parse()

	port, err := serial.OpenPort(&serial.Config{
		Name:        *device,
		Baud:        *baud,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "watchlog: open %s: %v\n", *device, err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("watchlog: listening on %s @ %d\n", *device, *baud)

	dec := logwire.NewDecoder()
	buf := make([]byte, 256)

	for {
		n, err := port.Read(buf)
		if err != nil && err != io.EOF {
			fmt.Fprintf(os.Stderr, "watchlog: read: %v\n", err)
			os.Exit(1)
		}
		if n == 0 {
			continue
		}

		dec.Feed(buf[:n])
		for {
			rec, ok := dec.Next()
			if !ok {
				break
			}
			fmt.Printf("%8d ms  %-5s %s\n", rec.Millis, rec.LevelString(), rec.Text)
		}
	}
}
