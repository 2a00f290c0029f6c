//go:build tinygo

package main

import (
	"time"

	"watchface/app"
	"watchface/hal"
)

func main() {
	h := hal.New(hal.HostConfig{})
	err := app.Run(h, app.Config{}, func() { time.Sleep(16 * time.Millisecond) })
	if err != nil {
		h.Logger().WriteLineString("watchface: " + err.Error())
	}
	select {}
}
