// Package report generates the asset-inventory report: a sequence of
// "<Field>: <value>" lines collected from the sysctl interface, the device
// registry, and an optional model-description lookup.
//
// Collection is best-effort throughout. Each field is independently
// optional: a failed read omits that one line (visible under --debug) and
// never aborts the rest of the report.
package report

import (
	"fmt"
	"io"
	"math"
	"net"
	"strconv"

	"assetctl/internal/ioreg"
	"assetctl/internal/logger"
)

// ControlSource reads typed values from the system control interface.
// *sysctl.Reader implements it.
type ControlSource interface {
	String(name string) (string, error)
	Uint32(name string) (uint32, error)
	Uint64(name string) (uint64, error)
}

// ServiceSource queries the device registry by service class name.
// *ioreg.Enumerator implements it.
type ServiceSource interface {
	First(class string) (ioreg.Service, bool, error)
}

// Describer resolves a serial number to a marketing model description.
type Describer interface {
	Describe(serial string) (string, error)
}

// Generator collects and prints the asset report.
type Generator struct {
	controls ControlSource
	registry ServiceSource
	describe Describer // nil disables the Model Description field
	out      io.Writer
}

// New returns a Generator writing to out. describe may be nil.
func New(controls ControlSource, registry ServiceSource, describe Describer, out io.Writer) *Generator {
	return &Generator{controls: controls, registry: registry, describe: describe, out: out}
}

// Run collects every field and prints one line per successful read.
func (g *Generator) Run() {
	serial, err := g.serviceString("IOPlatformExpertDevice", "IOPlatformSerialNumber")
	g.emit("Serial Number", serial, err)

	uuid, err := g.serviceString("IOPlatformExpertDevice", "IOPlatformUUID")
	g.emit("Hardware UUID", uuid, err)

	model, err := g.controls.String("hw.model")
	g.emit("Model Identifier", model, err)

	if g.describe != nil && serial != "" {
		desc, err := g.describe.Describe(serial)
		g.emit("Model Description", desc, err)
	}

	cpu, err := g.controls.String("machdep.cpu.brand_string")
	g.emit("Processor", cpu, err)

	cores, err := g.controls.Uint32("hw.ncpu")
	g.emitOr("Processor Cores", strconv.FormatUint(uint64(cores), 10), err)

	mem, err := g.controls.Uint64("hw.memsize")
	g.emitOr("Memory", fmt.Sprintf("%d GB", mem>>30), err)

	storage, err := g.storageSize()
	g.emit("Storage", storage, err)

	mac, err := g.serviceMAC("AirPort_BrcmNIC", "IOMACAddress")
	g.emit("Wi-Fi MAC Address", mac, err)

	mac, err = g.serviceMAC("BCM5701Enet", "IOMACAddress")
	g.emit("Ethernet MAC Address", mac, err)

	mac, err = g.serviceMAC("AppleBroadcomBluetoothHostController", "BluetoothDeviceAddress")
	g.emit("Bluetooth MAC Address", mac, err)

	charge, err := g.batteryCharge()
	g.emit("Battery Charge", charge, err)

	version, err := g.osVersion()
	g.emit("OS Version", version, err)
}

// emit prints one report line, or skips the field when its read failed or
// produced nothing.
func (g *Generator) emit(field, value string, err error) {
	if err != nil {
		logger.Debug("[DEBUG] Skipping field %q: %v\n", field, err)
		return
	}
	if value == "" {
		logger.Debug("[DEBUG] Skipping field %q: empty value\n", field)
		return
	}
	fmt.Fprintf(g.out, "%s: %s\n", field, value)
}

// emitOr is emit for values formatted before the error check.
func (g *Generator) emitOr(field, value string, err error) {
	if err != nil {
		g.emit(field, "", err)
		return
	}
	g.emit(field, value, nil)
}

// serviceString reads one string property from the first service matching
// the class.
func (g *Generator) serviceString(class, key string) (string, error) {
	svc, ok, err := g.registry.First(class)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no %s service registered", class)
	}
	v, ok := svc.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%s has no %s property", class, key)
	}
	return v.AsString()
}

// serviceMAC reads a binary MAC-address property and renders it in the
// usual colon-separated form.
func (g *Generator) serviceMAC(class, key string) (string, error) {
	svc, ok, err := g.registry.First(class)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no %s service registered", class)
	}
	v, ok := svc.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%s has no %s property", class, key)
	}
	b, err := v.AsBytes()
	if err != nil {
		return "", err
	}
	if len(b) != 6 {
		return "", fmt.Errorf("%s %s is %d bytes, not a MAC address", class, key, len(b))
	}
	return net.HardwareAddr(b).String(), nil
}

// storageSize reads the APFS media size and renders it in decimal GB, the
// unit drive capacities are marketed in.
func (g *Generator) storageSize() (string, error) {
	svc, ok, err := g.registry.First("AppleAPFSMedia")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no AppleAPFSMedia service registered")
	}
	v, ok := svc.Lookup("Size")
	if !ok {
		return "", fmt.Errorf("AppleAPFSMedia has no Size property")
	}
	size, err := v.AsNumber()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d GB", int64(math.Round(float64(size)/1e9))), nil
}

// batteryCharge computes the charge percentage from the power source
// capacities, rounded to one decimal place. Machines without a battery
// simply omit the field.
func (g *Generator) batteryCharge() (string, error) {
	svc, ok, err := g.registry.First("IOPMPowerSource")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no IOPMPowerSource service registered")
	}
	if v, ok := svc.Lookup("BatteryInstalled"); ok {
		if installed, err := v.AsBool(); err == nil && !installed {
			return "", nil
		}
	}
	cur, err := numberProperty(svc, "CurrentCapacity")
	if err != nil {
		return "", err
	}
	max, err := numberProperty(svc, "MaxCapacity")
	if err != nil {
		return "", err
	}
	if max <= 0 {
		return "", fmt.Errorf("MaxCapacity is %d", max)
	}
	pct := math.Round(1000*float64(cur)/float64(max)) / 10
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%", nil
}

// osVersion combines the product version with the build identifier when
// both are readable.
func (g *Generator) osVersion() (string, error) {
	product, err := g.controls.String("kern.osproductversion")
	if err != nil {
		return "", err
	}
	if build, err := g.controls.String("kern.osversion"); err == nil && build != "" {
		return product + " (" + build + ")", nil
	}
	return product, nil
}

func numberProperty(svc ioreg.Service, key string) (int64, error) {
	v, ok := svc.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("missing %s property", key)
	}
	return v.AsNumber()
}
