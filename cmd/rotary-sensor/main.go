// Command rotary-sensor decodes a quadrature rotary encoder on GPIO, drives an
// RGB indicator LED, and publishes rotation events to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/rotary-sensor/internal/gpio"
	"github.com/sweeney/rotary-sensor/internal/led"
	"github.com/sweeney/rotary-sensor/internal/logic"
	"github.com/sweeney/rotary-sensor/internal/mqtt"
	"github.com/sweeney/rotary-sensor/internal/status"
	"github.com/sweeney/rotary-sensor/internal/web"
)

func main() {
	poll := flag.Duration("poll", time.Millisecond, "GPIO polling interval")
	interval := flag.Duration("interval", logic.DefaultSampleInterval, "Decoder sample interval (debounce gate)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	rateWindow := flag.Duration("rate-window", 500*time.Millisecond, "Fast-spin detection window (0 to disable)")
	pinA := flag.Int("pin-a", gpio.DefaultPinA, "BCM pin number for encoder channel A")
	pinB := flag.Int("pin-b", gpio.DefaultPinB, "BCM pin number for encoder channel B")
	pinRed := flag.Int("pin-red", gpio.DefaultPinRed, "BCM pin number for LED red channel")
	pinGreen := flag.Int("pin-green", gpio.DefaultPinGreen, "BCM pin number for LED green channel")
	pinBlue := flag.Int("pin-blue", gpio.DefaultPinBlue, "BCM pin number for LED blue channel")
	ledEnabled := flag.Bool("led", true, "Drive the RGB indicator LED")
	printState := flag.Bool("print-state", false, "Print current channel levels and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")

	flag.Parse()

	cfg := daemonConfig{
		poll:       *poll,
		interval:   *interval,
		broker:     *broker,
		heartbeat:  *heartbeat,
		rateWindow: *rateWindow,
		pinA:       *pinA,
		pinB:       *pinB,
		pinRed:     *pinRed,
		pinGreen:   *pinGreen,
		pinBlue:    *pinBlue,
		ledEnabled: *ledEnabled,
		printState: *printState,
		httpAddr:   *httpAddr,
	}
	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

type daemonConfig struct {
	poll       time.Duration
	interval   time.Duration
	broker     string
	heartbeat  time.Duration
	rateWindow time.Duration
	pinA       int
	pinB       int
	pinRed     int
	pinGreen   int
	pinBlue    int
	ledEnabled bool
	printState bool
	httpAddr   string
}

func run(cfg daemonConfig) error {
	// Initialize GPIO
	gpioReader, err := gpio.NewRealReader(cfg.pinA, cfg.pinB)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer gpioReader.Close()

	// Print state mode
	if cfg.printState {
		a, b, err := gpioReader.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		fmt.Printf("A: %s, B: %s\n", levelString(a), levelString(b))
		return nil
	}

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(cfg.broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize LED
	var ledDriver *led.Driver
	if cfg.ledEnabled {
		realLED, err := gpio.NewRealLED(cfg.pinRed, cfg.pinGreen, cfg.pinBlue)
		if err != nil {
			return fmt.Errorf("init led: %w", err)
		}
		defer realLED.Close()
		ledDriver = led.NewDriver(realLED)
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:           cfg.poll.Milliseconds(),
		SampleIntervalMs: cfg.interval.Milliseconds(),
		HeartbeatMs:      cfg.heartbeat.Milliseconds(),
		RateWindowMs:     cfg.rateWindow.Milliseconds(),
		Broker:           cfg.broker,
		HTTPAddr:         cfg.httpAddr,
		PinA:             cfg.pinA,
		PinB:             cfg.pinB,
		LEDEnabled:       cfg.ledEnabled,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	log.Printf("started: poll=%v interval=%v broker=%s heartbeat=%v pins A=%d B=%d",
		cfg.poll, cfg.interval, cfg.broker, cfg.heartbeat, cfg.pinA, cfg.pinB)

	ticker := time.NewTicker(cfg.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(gpioReader, publisher, publisher, ledDriver, tracker,
		cfg.interval, cfg.heartbeat, cfg.rateWindow, time.Now, ticker.C, sigCh)
}

func runLoop(gpioReader gpio.Reader, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, ledDriver *led.Driver, tracker *status.Tracker, interval, heartbeat, rateWindow time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	decoder := logic.NewDecoder(interval, startTime)
	rate := logic.NewRateTracker(rateWindow)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			a, b, err := gpioReader.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			event := decoder.Poll(logic.Input{A: a, B: b, Time: t})
			if event != nil {
				event.StepsInWindow = rate.AddStep(event.Rotation, t)
				log.Printf("event: %s (position=%d steps=%d)", event.Rotation, event.Position, event.StepsInWindow)

				if tracker != nil {
					tracker.SetLastDirection(event.Rotation)
				}
				if ledDriver != nil {
					if err := ledDriver.Show(event.Position); err != nil {
						log.Printf("led error: %v", err)
					} else if tracker != nil {
						if c, ok := ledDriver.Current(); ok {
							tracker.SetLEDColor(led.Name(c))
						}
					}
				}

				if err := publisher.Publish(*event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			// Check for heartbeat
			if hbData := decoder.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v position=%d cw=%d ccw=%d",
					hbData.Uptime, hbData.Position, hbData.Counts.CW, hbData.Counts.CCW)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					tracker.Update(decoder.Position(), decoder.Sampled(), decoder.Counts(), rate.StepsInWindow(t))
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(decoder.Position(), decoder.Sampled(), decoder.Counts(), rate.StepsInWindow(t))
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

func levelString(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}
