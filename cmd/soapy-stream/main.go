package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sdrkit/soapy/pkg/soapy"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)

	configFile := flag.String("config", "", "YAML config file")
	deviceFilter := flag.String("device", "", "device filter, e.g. 'driver=lime'")
	receiveFile := flag.String("receive", "", "receive samples into FILE (CF32 little endian)")
	transmitFile := flag.String("transmit", "", "transmit samples from FILE (CF32 little endian)")
	channel := flag.Uint("channel", 0, "channel of device")
	freq := flag.String("freq", "", "center frequency in Hz, k/M/G suffixes allowed")
	rate := flag.String("rate", "", "sample rate in Hz, k/M/G suffixes allowed")
	antenna := flag.String("antenna", "", "antenna name")
	bandwidth := flag.String("bandwidth", "", "baseband filter bandwidth in Hz, k/M/G suffixes allowed")
	gain := flag.Float64("gain", math.NaN(), "overall gain in dB")
	samples := flag.Int64("samples", 0, "with -receive: number of samples (default unlimited); with -transmit: times to repeat the file (default 1)")
	statsAddr := flag.String("stats", "", "serve JSON stream counters on this address")
	spectrumEvery := flag.Int("spectrum", 0, "log the strongest spectral bin every N blocks")
	flag.Parse()

	var cfg Config
	if *configFile != "" {
		var err error
		cfg, err = loadConfig(*configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("error reading config file")
		}
	}
	// Flags given on the command line override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Device = *deviceFilter
		case "channel":
			cfg.Channel = *channel
		case "freq":
			cfg.Frequency = *freq
		case "rate":
			cfg.SampleRate = *rate
		case "antenna":
			cfg.Antenna = *antenna
		case "bandwidth":
			cfg.Bandwidth = *bandwidth
		case "gain":
			g := *gain
			cfg.Gain = &g
		case "stats":
			cfg.StatsAddr = *statsAddr
		case "spectrum":
			cfg.SpectrumEvery = *spectrumEvery
		}
	})

	soapy.ConfigureLogging(log.Logger)

	var direction soapy.Direction
	var fname string
	switch {
	case *receiveFile != "" && *transmitFile == "":
		direction, fname = soapy.DirectionRx, *receiveFile
	case *transmitFile != "" && *receiveFile == "":
		direction, fname = soapy.DirectionTx, *transmitFile
	default:
		log.Fatal().Msg("specify exactly one of -receive FILE or -transmit FILE")
	}

	devices, err := soapy.Enumerate(soapy.ParseKwArgs(cfg.Device))
	if err != nil {
		log.Fatal().Err(err).Msg("error listing devices")
	}
	var devArgs soapy.KwArgs
	switch len(devices) {
	case 0:
		log.Fatal().Msg("no matching devices found")
	case 1:
		devArgs = devices[0]
	default:
		for _, d := range devices {
			log.Info().Msgf("try -device '%s'", d)
		}
		log.Fatal().Int("count", len(devices)).Msg("multiple devices found, pick one")
	}

	dev, err := soapy.Open(devArgs)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening device")
	}
	defer dev.Close()

	if err := applySettings(dev, direction, cfg); err != nil {
		log.Fatal().Err(err).Msg("error configuring device")
	}

	sampleRate, err := dev.SampleRate(direction, cfg.Channel)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read back sample rate")
	}
	centerFreq, err := dev.Frequency(direction, cfg.Channel)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read back center frequency")
	}

	stats := &streamStats{}
	spectrum := newSpectrumReporter(cfg.SpectrumEvery, centerFreq, sampleRate, log.Logger)

	eg, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	eg.Go(func() error {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	if cfg.StatsAddr != "" {
		eg.Go(func() error {
			return stats.serve(ctx, cfg.StatsAddr)
		})
	}

	eg.Go(func() error {
		defer cancel()
		if direction == soapy.DirectionRx {
			return receive(ctx, dev, cfg.Channel, fname, *samples, stats, spectrum)
		}
		return transmit(ctx, dev, cfg.Channel, fname, *samples, stats)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("stream failed")
	}
	log.Info().Msg("exiting")
}

func applySettings(dev *soapy.Device, dir soapy.Direction, cfg Config) error {
	ch := cfg.Channel

	if cfg.Frequency != "" {
		hz, err := parseHz(cfg.Frequency)
		if err != nil {
			return fmt.Errorf("invalid frequency: %w", err)
		}
		if err := dev.SetFrequency(dir, ch, hz, nil); err != nil {
			return fmt.Errorf("failed to set frequency: %w", err)
		}
	}
	if cfg.SampleRate != "" {
		hz, err := parseHz(cfg.SampleRate)
		if err != nil {
			return fmt.Errorf("invalid sample rate: %w", err)
		}
		if err := dev.SetSampleRate(dir, ch, hz); err != nil {
			return fmt.Errorf("failed to set sample rate: %w", err)
		}
	}
	if cfg.Antenna != "" {
		if err := dev.SetAntenna(dir, ch, cfg.Antenna); err != nil {
			return fmt.Errorf("failed to set antenna: %w", err)
		}
	}
	if cfg.Bandwidth != "" {
		hz, err := parseHz(cfg.Bandwidth)
		if err != nil {
			return fmt.Errorf("invalid bandwidth: %w", err)
		}
		if err := dev.SetBandwidth(dir, ch, hz); err != nil {
			return fmt.Errorf("failed to set bandwidth: %w", err)
		}
	}
	if cfg.Gain != nil && !math.IsNaN(*cfg.Gain) {
		if err := dev.SetGain(dir, ch, *cfg.Gain); err != nil {
			return fmt.Errorf("failed to set gain: %w", err)
		}
	}
	return nil
}

func receive(ctx context.Context, dev *soapy.Device, channel uint, fname string, limit int64, stats *streamStats, spectrum *spectrumReporter) error {
	st, err := dev.RxStreamCF32([]uint{channel}, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	defer w.Flush()

	buf := make([]complex64, st.MTU())
	if err := st.Activate(); err != nil {
		return err
	}
	defer st.Deactivate()

	remaining := limit
	for limit <= 0 || remaining > 0 {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		readSize := int64(len(buf))
		if limit > 0 && remaining < readSize {
			readSize = remaining
		}

		n, err := st.Read([][]complex64{buf[:readSize]}, time.Second)
		if err != nil {
			var serr *soapy.Error
			if errors.As(err, &serr) {
				switch serr.Code {
				case soapy.ErrTimeout:
					stats.timeout()
					continue
				case soapy.ErrOverflow:
					stats.overflow()
					continue
				}
			}
			return err
		}

		if err := binary.Write(w, binary.LittleEndian, buf[:n]); err != nil {
			return err
		}
		stats.addSamples(n)
		spectrum.process(buf[:n])
		remaining -= int64(n)
	}
	return nil
}

func transmit(ctx context.Context, dev *soapy.Device, channel uint, fname string, repeats int64, stats *streamStats) error {
	if repeats <= 0 {
		repeats = 1
	}

	st, err := dev.TxStreamCF32([]uint{channel}, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	buf := make([]complex64, st.MTU())
	raw := make([]byte, len(buf)*8)

	if err := st.Activate(); err != nil {
		return err
	}
	defer st.Deactivate()

	for i := int64(0); i < repeats; i++ {
		if err := playFile(ctx, st, fname, buf, raw, stats); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
	return nil
}

// txWriter is the write half of a transmit stream.
type txWriter interface {
	Write(buffers [][]complex64, timeout time.Duration) (int, error)
}

func playFile(ctx context.Context, st txWriter, fname string, buf []complex64, raw []byte, stats *streamStats) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		nb, rerr := io.ReadFull(r, raw)
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil && rerr != io.ErrUnexpectedEOF {
			return rerr
		}

		nsamples := nb / 8
		for i := 0; i < nsamples; i++ {
			re := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8:]))
			im := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8+4:]))
			buf[i] = complex(re, im)
		}

		for written := 0; written < nsamples; {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			n, werr := st.Write([][]complex64{buf[written:nsamples]}, time.Second)
			if werr != nil {
				var serr *soapy.Error
				if errors.As(werr, &serr) {
					switch serr.Code {
					case soapy.ErrTimeout:
						stats.timeout()
						continue
					case soapy.ErrUnderflow:
						stats.underflow()
						continue
					}
				}
				return werr
			}
			stats.addSamples(n)
			written += n
		}

		if rerr == io.ErrUnexpectedEOF {
			return nil
		}
	}
}
