// iracmqtt bridges MQTT set topics onto IR transmissions through the
// serial pulse streamer. Without a serial port it runs dry and only logs
// what it would transmit.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/danmuck/irac/internal/bridge"
	"github.com/danmuck/irac/internal/logging"
	"github.com/danmuck/irac/internal/pulse"
	"github.com/danmuck/irac/internal/streamer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "iracmqtt: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logging.ConfigureRuntime()
	log := logging.New("iracmqtt")

	path := "config.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := loadBridgeConfig(path)
	if err != nil {
		return err
	}

	var tx pulse.Transmitter
	if cfg.SerialPort == "" {
		log.Warn().Msg("no serial port configured, running dry")
		tx = dryTransmitter{log: log}
	} else {
		dev, err := streamer.Open(streamer.Config{Port: cfg.SerialPort, Baud: cfg.SerialBaud})
		if err != nil {
			return err
		}
		defer dev.Close()
		tx = dev
	}

	svc := bridge.New(tx, cfg.Repeat, log)

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	// Resubscribe on every (re)connect; paho drops subscriptions with the
	// session unless the broker keeps them.
	opts.OnConnect = func(client mqtt.Client) {
		if err := svc.Subscribe(client); err != nil {
			log.Error().Err(err).Msg("subscribe failed")
		}
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect %s: %w", cfg.Broker, token.Error())
	}
	defer client.Disconnect(250)
	log.Info().Str("broker", cfg.Broker).Str("client_id", cfg.ClientID).Msg("bridge running")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")
	return nil
}

// dryTransmitter satisfies pulse.Transmitter without hardware.
type dryTransmitter struct {
	log zerolog.Logger
}

func (d dryTransmitter) Transmit(train pulse.Train) error {
	d.log.Info().
		Int("pulses", len(train.Pulses)).
		Uint32("carrier_hz", train.CarrierHz).
		Msg("dry-run transmit")
	return nil
}
