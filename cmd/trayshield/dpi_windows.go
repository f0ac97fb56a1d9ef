//go:build windows

package main

import "golang.org/x/sys/windows"

// processPerMonitorDPIAware is PROCESS_PER_MONITOR_DPI_AWARE.
const processPerMonitorDPIAware = 2

var procSetProcessDpiAwareness = windows.NewLazySystemDLL("shcore.dll").NewProc("SetProcessDpiAwareness")

// enableDPIAwareness keeps the tray menu sharp on scaled displays. Failure
// (older Windows, or awareness already set by a manifest) is ignored.
func enableDPIAwareness() {
	if procSetProcessDpiAwareness.Find() != nil {
		return
	}
	procSetProcessDpiAwareness.Call(processPerMonitorDPIAware) //nolint:errcheck // best effort
}
