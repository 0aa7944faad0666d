package sysstats

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

type ifaceAddrs struct {
	name  string
	addrs []string
}

// NetworkStats lists the addresses of every non-loopback interface.
type NetworkStats struct {
	mu              sync.RWMutex
	ifaceInfoBuffer string
}

func NewNetworkStats() (*NetworkStats, error) {
	nstats := &NetworkStats{}

	if err := nstats.populateIfaceInfo(); err != nil {
		return nil, err
	}

	return nstats, nil
}

// Refresh rereads the interface list every interval until ctx is done.
// Lookup failures keep the previous list.
func (nstats *NetworkStats) Refresh(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_ = nstats.populateIfaceInfo()
		}
	}
}

func (nstats *NetworkStats) populateIfaceInfo() error {
	ifaces, err := net.Interfaces()
	if err != nil {
		return err
	}

	list := []ifaceAddrs{}
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			return err
		}

		entry := ifaceAddrs{name: iface.Name}
		for _, addr := range addrs {
			entry.addrs = append(entry.addrs, addr.String())
		}
		list = append(list, entry)
	}

	info := describeIfaces(list)

	nstats.mu.Lock()
	nstats.ifaceInfoBuffer = info
	nstats.mu.Unlock()

	return nil
}

func describeIfaces(ifaces []ifaceAddrs) string {
	ifaceList := []string{}
	for _, iface := range ifaces {
		if iface.name == "lo" || len(iface.addrs) == 0 {
			continue
		}

		addrsList := []string{}
		for _, addr := range iface.addrs {
			if strings.HasPrefix(addr, "fe80") {
				continue
			}
			addrsList = append(addrsList, addr)
		}
		ifaceList = append(ifaceList, fmt.Sprintf("%s ~ %s", iface.name, strings.Join(addrsList, ", ")))
	}

	if len(ifaceList) == 0 {
		return "сеть: нет"
	}

	return "сеть: " + strings.Join(ifaceList, " | ")
}

func (nstats *NetworkStats) String() string {
	nstats.mu.RLock()
	defer nstats.mu.RUnlock()

	return nstats.ifaceInfoBuffer
}
