package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hectorherrerafullstack/astroApi/client"
	"github.com/hectorherrerafullstack/astroApi/client/format"
	"github.com/hectorherrerafullstack/astroApi/internal/config"
	"github.com/hectorherrerafullstack/astroApi/store"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app carries state shared by sub-commands for one invocation.
type app struct {
	baseURL   string
	storePath string
	debug     bool

	cfg *config.Config
}

func (a *app) newClient() (*client.Client, error) {
	opts := []client.Option{client.WithDebugLogging(a.debug)}
	if a.cfg.HTTPTimeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(a.cfg.HTTPTimeout))
	}
	return client.New(a.baseURL, opts...)
}

func (a *app) openStore() (*store.SQLite, error) {
	return store.Open(a.storePath)
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "astro",
		Short:         "Natal charts, daily horoscopes and planetary transits from the astrology service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.baseURL == "" {
				a.baseURL = cfg.BaseURL
			}
			if a.storePath == "" {
				a.storePath = cfg.StorePath
			}
			a.debug = a.debug || cfg.Debug

			level := cfg.Level()
			if a.debug {
				level = zerolog.DebugLevel
			}
			config.InitLogger(level)
			log.Debug().Str("base_url", a.baseURL).Str("store", a.storePath).Msg("debug logging enabled")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Base URL of the astrology service (default $ASTRO_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&a.storePath, "store", "", "Path of the natal chart store (default $ASTRO_STORE_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newChartCmd(a))
	rootCmd.AddCommand(newHoroscopeCmd(a))
	rootCmd.AddCommand(newTransitsCmd(a))
	rootCmd.AddCommand(newHealthCmd(a))

	return rootCmd
}

func newChartCmd(a *app) *cobra.Command {
	var birth client.BirthData
	var output string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute and store the natal chart, then show today's horoscope",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output, true); err != nil {
				return err
			}
			c, err := a.newClient()
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			start := time.Now()
			res, err := client.FullFlow(cmd.Context(), c, s, birth, birth.Timezone)
			if err != nil {
				log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("full flow failed")
				return renderFailure(cmd, output, err)
			}
			log.Debug().Dur("elapsed", time.Since(start)).Msg("full flow completed")

			if output == outputHTML {
				return writeHTML(cmd, res.Horoscope)
			}
			return render(cmd.OutOrStdout(), output, map[string]any{
				"chart":     res.Chart,
				"horoscope": res.Horoscope,
				"transits":  res.Transits,
			})
		},
	}

	cmd.Flags().StringVar(&birth.Datetime, "datetime", "", "Local birth date and time, e.g. 1992-12-07T23:58:00 (required)")
	cmd.Flags().StringVar(&birth.Timezone, "timezone", "", "IANA timezone of the birth place (required)")
	cmd.Flags().Float64Var(&birth.Latitude, "lat", 0, "Birth latitude in degrees")
	cmd.Flags().Float64Var(&birth.Longitude, "lng", 0, "Birth longitude in degrees")
	cmd.Flags().StringVar(&birth.HouseSystem, "house-system", "P", "House system code (P = Placidus)")
	cmd.Flags().BoolVar(&birth.TopocentricMoonOnly, "topocentric-moon-only", false, "Use topocentric positions for the Moon only")
	cmd.Flags().StringVarP(&output, "output", "o", outputHTML, "Output format: html|json|yaml")

	_ = cmd.MarkFlagRequired("datetime")
	_ = cmd.MarkFlagRequired("timezone")

	return cmd
}

func newHoroscopeCmd(a *app) *cobra.Command {
	var date, timezone, output string

	cmd := &cobra.Command{
		Use:   "horoscope",
		Short: "Show the daily horoscope for the stored natal chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output, true); err != nil {
				return err
			}
			if timezone == "" {
				timezone = a.cfg.Timezone
			}
			c, err := a.newClient()
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			// No HoroscopeCache here: it would not outlive this process.
			h, err := client.QuickHoroscope(cmd.Context(), c, s, date, timezone)
			if err != nil {
				log.Error().Err(err).Str("date", date).Str("timezone", timezone).Msg("daily horoscope failed")
				return renderFailure(cmd, output, err)
			}
			if output == outputHTML {
				return writeHTML(cmd, h)
			}
			return render(cmd.OutOrStdout(), output, h)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Target date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (default $ASTRO_TIMEZONE)")
	cmd.Flags().StringVarP(&output, "output", "o", outputHTML, "Output format: html|json|yaml")

	return cmd
}

func newTransitsCmd(a *app) *cobra.Command {
	var date, timezone, output string

	cmd := &cobra.Command{
		Use:   "transits",
		Short: "List planetary positions for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output, false); err != nil {
				return err
			}
			if timezone == "" {
				timezone = a.cfg.Timezone
			}
			c, err := a.newClient()
			if err != nil {
				return err
			}
			ts, err := c.GetTransits(cmd.Context(), date, timezone)
			if err != nil {
				log.Error().Err(err).Str("date", date).Str("timezone", timezone).Msg("transits failed")
				return err
			}
			return render(cmd.OutOrStdout(), output, ts)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (default $ASTRO_TIMEZONE)")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json|yaml")

	return cmd
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the astrology service is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			hs, err := c.Health(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s\n", hs.Status)
			if hs.License != "" {
				fmt.Fprintf(out, "license: %s\n", hs.License)
			}
			if hs.SourceCode != "" {
				fmt.Fprintf(out, "source: %s\n", hs.SourceCode)
			}
			return nil
		},
	}
}

func writeHTML(cmd *cobra.Command, h *client.DailyHoroscope) error {
	return format.WriteHTML(cmd.OutOrStdout(), h)
}

// renderFailure prints the visible error block for HTML output and hands
// err back so the process still exits non-zero.
func renderFailure(cmd *cobra.Command, output string, err error) error {
	if output == outputHTML {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), format.ErrorHTML(err))
	}
	return err
}
