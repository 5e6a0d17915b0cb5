package app

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/daynight-periodogram/internal/render"
	"github.com/roman-kulish/daynight-periodogram/internal/simulation"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	options := []func(s *simulation.Simulator){
		simulation.WithLogger(logger),
		simulation.WithSeeding(simulation.Seeding{
			Seed:  config.Seed.Seed,
			Scope: config.Seed.Scope,
		}),
	}
	if config.Simulation.LegacyAliases {
		options = append(options, simulation.WithLegacyAliases())
	}

	params := config.Params()

	logger.Info("simulation configuration",
		slog.Group("params",
			slog.String("duration", humanize.FtoaWithDigits(params.DurationHours, 2)+"h"),
			slog.String("observations", humanize.Comma(int64(params.Observations))),
			slog.Float64("period", params.PeriodHours),
			slog.Float64("phase", params.PhaseRadians),
			slog.Float64("amplitudeNoiseStd", params.AmplitudeNoiseStd),
			slog.Float64("timeNoiseStd", params.TimeNoiseStd),
			slog.Float64("dayFraction", params.DayFraction),
			slog.Bool("irregular", params.Irregular),
		),
		slog.Group("seed",
			slog.Uint64("value", config.Seed.Seed),
			slog.String("scope", config.Seed.Scope.String()),
		))

	res, err := simulation.New(options...).Run(params)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	logResult(res, logger)

	renderer, err := render.NewRenderer(render.Config{
		Width:       config.Output.Width,
		PanelHeight: config.Output.PanelHeight,
		LogPower:    config.Output.LogPower,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	img, err := renderer.Render(res)
	if err != nil {
		return fmt.Errorf("rendering figure: %w", err)
	}

	path := config.OutputPath()
	logger.Info("writing figure",
		slog.Group("image",
			slog.String("destination", path),
			slog.String("format", string(config.Output.Format)),
			slog.Int("width", img.Bounds().Dx()),
			slog.Int("height", img.Bounds().Dy()),
		))

	return writeImage(path, config.Output.Format, img)
}

func logResult(res *simulation.Result, logger *slog.Logger) {
	stats := []any{
		slog.String("visible", humanize.Comma(int64(res.Visibility.VisibleCount()))),
		slog.String("visibleFraction", humanize.FtoaWithDigits(res.Visibility.Fraction(), 3)),
		slog.String("meanSamplingInterval", humanize.FtoaWithDigits(res.MeanSamplingInterval, 4)+"h"),
		slog.String("frequencies", humanize.Comma(int64(res.Spectrum.Len()))),
	}

	if peak, ok := res.Peak(); ok {
		stats = append(stats,
			slog.Float64("peakFrequency", peak.Frequency),
			slog.Float64("peakPeriod", peak.Period()),
			slog.Float64("peakPower", peak.Power))
	} else {
		logger.Warn("too few visible samples for a periodogram",
			slog.Int("visible", res.Visibility.VisibleCount()),
			slog.Int("required", simulation.MinVisibleSamples))
	}

	logger.Info("finished simulation", slog.Group("stats", stats...))

	for _, m := range res.Aliases {
		logger.Info("expected alias",
			slog.String("name", m.Name),
			slog.String("kind", string(m.Kind)),
			slog.Float64("frequency", m.Frequency),
			slog.Float64("period", m.Period()))
	}
}

func writeImage(path string, format ImageFormat, img image.Image) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cErr := out.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cErr)
		}
	}()

	switch format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})

	default:
		err = fmt.Errorf("invalid image format: %s", format)
	}
	return err
}
