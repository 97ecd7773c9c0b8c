package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sdrkit/soapy/pkg/soapy"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	flag.Parse()
	soapy.ConfigureLogging(log.Logger)

	filter := soapy.KwArgs{}
	if flag.NArg() > 0 {
		filter = soapy.ParseKwArgs(flag.Arg(0))
	}

	fmt.Printf("SoapySDR %s (API %s, ABI %s)\n\n", soapy.LibVersion(), soapy.APIVersion(), soapy.ABIVersion())

	devices, err := soapy.Enumerate(filter)
	if err != nil {
		log.Fatal().Err(err).Msg("error listing devices")
	}
	if len(devices) == 0 {
		log.Warn().Msg("no devices found")
		return
	}

	for _, devArgs := range devices {
		fmt.Println(devArgs)

		dev, err := soapy.Open(devArgs)
		if err != nil {
			log.Error().Err(err).Str("device", devArgs.String()).Msg("failed to open device")
			continue
		}

		for _, dir := range []soapy.Direction{soapy.DirectionRx, soapy.DirectionTx} {
			n, err := dev.NumChannels(dir)
			if err != nil {
				log.Error().Err(err).Stringer("direction", dir).Msg("failed to count channels")
				continue
			}
			for ch := uint(0); ch < n; ch++ {
				if err := printChannelInfo(dev, dir, ch); err != nil {
					log.Error().Err(err).Stringer("direction", dir).Uint("channel", ch).
						Msg("failed to get channel info")
				}
			}
		}

		dev.Close()
	}
}

func printChannelInfo(dev *soapy.Device, dir soapy.Direction, channel uint) error {
	fmt.Printf("\t%s Channel %d\n", dir, channel)

	freqRanges, err := dev.FrequencyRange(dir, channel)
	if err != nil {
		return err
	}
	for _, r := range freqRanges {
		fmt.Printf("\t\tFreq range: %g to %g MHz\n", r.Minimum/1e6, r.Maximum/1e6)
	}

	rateRanges, err := dev.SampleRateRange(dir, channel)
	if err != nil {
		return err
	}
	for _, r := range rateRanges {
		if r.Minimum == r.Maximum {
			fmt.Printf("\t\tSample rate: %g\n", r.Minimum)
		} else {
			fmt.Printf("\t\tSample rate range: %g to %g\n", r.Minimum, r.Maximum)
		}
	}

	antennas, err := dev.Antennas(dir, channel)
	if err != nil {
		return err
	}
	fmt.Printf("\t\tAntennas: %v\n", antennas)

	gains, err := dev.ListGains(dir, channel)
	if err != nil {
		return err
	}
	fmt.Printf("\t\tGains: %v\n", gains)

	formats, err := dev.StreamFormats(dir, channel)
	if err != nil {
		return err
	}
	fmt.Printf("\t\tStream formats: %v\n", formats)

	return nil
}
