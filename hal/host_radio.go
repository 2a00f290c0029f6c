//go:build !tinygo

package hal

import (
	"net"
	"os"
)

// hostRadio reports the first non-loopback IPv4 interface in place of Wi-Fi.
type hostRadio struct{}

func (hostRadio) Info() RadioInfo {
	var info RadioInfo
	if name, err := os.Hostname(); err == nil {
		info.SSID = name
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return info
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipn, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipn.IP.To4()
			if ip4 == nil {
				continue
			}
			info.IP = PackIPv4(ip4)
			info.BSSID = iface.HardwareAddr.String()
			return info
		}
	}
	return info
}

// PackIPv4 packs a 4-byte address with the first octet in the low byte.
func PackIPv4(ip []byte) uint32 {
	if len(ip) < 4 {
		return 0
	}
	return uint32(ip[0]) | uint32(ip[1])<<8 | uint32(ip[2])<<16 | uint32(ip[3])<<24
}
