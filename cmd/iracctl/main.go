// iracctl builds Technibel remote frames on the command line: print the
// packed frame and readable state, dump or transmit the pulse train, or
// decode a captured pulse dump back into a state.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/irac/internal/pulse"
	"github.com/danmuck/irac/internal/streamer"
	"github.com/danmuck/irac/internal/technibel"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "iracctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("iracctl", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "path to TOML config")
		power      = fs.Bool("power", true, "power state")
		mode       = fs.String("mode", "cool", "operating mode: cool, heat, dry or fan")
		fan        = fs.String("fan", "low", "fan speed: low, medium or high")
		temp       = fs.String("temp", "20c", "target temperature, e.g. 21c or 74f")
		swing      = fs.Bool("swing", false, "vertical swing")
		sleep      = fs.Bool("sleep", false, "sleep mode")
		timer      = fs.Duration("timer", 0, "on/off timer, e.g. 2h (0 disables)")
		repeat     = fs.Int("repeat", -1, "extra message repeats (-1 uses config)")
		dump       = fs.Bool("dump", false, "print the pulse train in microseconds")
		send       = fs.Bool("send", false, "transmit through the serial streamer")
		decodePath = fs.String("decode", "", "decode a captured pulse dump instead of encoding")
		capture    = fs.Bool("capture", false, "capture one train from the streamer and decode it")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg := defaultRuntimeConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadRuntimeConfig(*configPath); err != nil {
			return err
		}
	}
	if *repeat >= 0 {
		cfg.Repeat = *repeat
	}

	if *decodePath != "" {
		return decodeCapture(*decodePath, cfg.Tolerance)
	}
	if *capture {
		return captureAndDecode(cfg)
	}

	ac, err := buildState(*power, *mode, *fan, *temp, *swing, *sleep, *timer)
	if err != nil {
		return err
	}

	fmt.Printf("frame: 0x%014X\n", ac.Raw())
	fmt.Println(ac)

	train := technibel.Timing.Encode(ac.Raw(), technibel.Bits, cfg.Repeat)
	if *dump {
		printTrain(train)
	}
	if *send {
		return transmit(cfg, train)
	}
	return nil
}

// buildState applies the flag values in field order. The state model
// clamps out-of-range values instead of rejecting them.
func buildState(power bool, mode, fan, temp string, swing, sleep bool, timer time.Duration) (*technibel.Ac, error) {
	ac := technibel.NewAc()
	ac.SetPower(power)

	m, err := technibel.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	ac.SetMode(m)

	f, err := technibel.ParseFan(fan)
	if err != nil {
		return nil, err
	}
	ac.SetFan(f)

	degrees, fahrenheit, err := parseTemp(temp)
	if err != nil {
		return nil, err
	}
	ac.SetTemp(degrees, fahrenheit)

	ac.SetSwing(swing)
	ac.SetSleep(sleep)
	if timer < 0 {
		return nil, fmt.Errorf("timer must not be negative, got %v", timer)
	}
	ac.SetTimer(timer)
	return ac, nil
}

// parseTemp accepts "21", "21c" or "74f". A bare number is Celsius.
func parseTemp(s string) (uint8, bool, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	fahrenheit := false
	switch {
	case strings.HasSuffix(raw, "f"):
		fahrenheit = true
		raw = strings.TrimSuffix(raw, "f")
	case strings.HasSuffix(raw, "c"):
		raw = strings.TrimSuffix(raw, "c")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 255 {
		return 0, false, fmt.Errorf("invalid temperature %q", s)
	}
	return uint8(n), fahrenheit, nil
}

func transmit(cfg runtimeConfig, train pulse.Train) error {
	if cfg.SerialPort == "" {
		return errors.New("no serial port configured (set serial_port in the config)")
	}
	dev, err := streamer.Open(streamer.Config{Port: cfg.SerialPort, Baud: cfg.SerialBaud})
	if err != nil {
		return err
	}
	defer dev.Close()
	return dev.Transmit(train)
}

// decodeCapture reads whitespace-separated microsecond values, matches
// them against the protocol timing and prints the recovered state.
func decodeCapture(path string, tolerance int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read capture: %w", err)
	}
	fields := strings.Fields(string(data))
	raw := make([]time.Duration, 0, len(fields))
	for _, field := range fields {
		us, err := strconv.Atoi(field)
		if err != nil || us < 0 {
			return fmt.Errorf("invalid capture sample %q", field)
		}
		raw = append(raw, time.Duration(us)*time.Microsecond)
	}

	return matchAndPrint(raw, tolerance)
}

// captureAndDecode waits for the streamer to report one captured train
// and decodes it in place.
func captureAndDecode(cfg runtimeConfig) error {
	if cfg.SerialPort == "" {
		return errors.New("no serial port configured (set serial_port in the config)")
	}
	dev, err := streamer.Open(streamer.Config{
		Port:        cfg.SerialPort,
		Baud:        cfg.SerialBaud,
		ReadTimeout: 10 * time.Second,
	})
	if err != nil {
		return err
	}
	defer dev.Close()

	raw, err := dev.Capture()
	if err != nil {
		return err
	}
	return matchAndPrint(raw, cfg.Tolerance)
}

func matchAndPrint(raw []time.Duration, tolerance int) error {
	value, err := technibel.Timing.Match(raw, 0, technibel.Bits, tolerance, pulse.DefaultMarkExcess)
	if err != nil {
		return fmt.Errorf("decode capture: %w", err)
	}
	if !technibel.ValidChecksum(value) {
		return fmt.Errorf("decode capture: checksum mismatch in frame 0x%014X", value)
	}

	ac := technibel.NewAc()
	ac.SetRaw(value)
	fmt.Printf("frame: 0x%014X\n", value)
	fmt.Println(ac)
	return nil
}

func printTrain(train pulse.Train) {
	fmt.Printf("pulses: %d (carrier %d Hz, duty %d%%)\n", len(train.Pulses), train.CarrierHz, train.DutyCycle)
	for i, p := range train.Pulses {
		if i > 0 {
			if i%16 == 0 {
				fmt.Println()
			} else {
				fmt.Print(" ")
			}
		}
		fmt.Print(int(p / time.Microsecond))
	}
	fmt.Println()
}
