package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Garsondee/Void-Sense/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstFireTick    int
	firstHitTick     int
	firstKillTick    int
	firstEvadeTick   int
	firstPoolNotice  int

	shots   int
	hits    int
	dropped int
	kills   int

	modeChanges  int
	friendlyLeft int
	hostileLeft  int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var configPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run (60 ticks ≈ 1s)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "skirmish", "scenario name")
	flag.StringVar(&configPath, "config", "", "optional combat config file (yaml/toml/json)")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if runs <= 0 || ticks <= 0 {
		log.Error("-runs and -ticks must be > 0")
		os.Exit(1)
	}
	if scenario != "skirmish" && scenario != "capital-assault" {
		log.Errorf("unsupported scenario %q (supported: skirmish, capital-assault)", scenario)
		os.Exit(1)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.WithError(err).Error("loading config")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"scenario":  scenario,
		"runs":      runs,
		"ticks":     ticks,
		"seed_base": seedBase,
		"pool":      cfg.PoolCapacity,
	}).Info("starting headless combat report")

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(scenario, i+1, seed, ticks, cfg)
		all = append(all, stats)
		log.WithFields(logrus.Fields{
			"run":   stats.runIndex,
			"seed":  stats.seed,
			"shots": stats.shots,
			"hits":  stats.hits,
			"kills": stats.kills,
		}).Debug("run complete")
		printRun(stats)
	}
	printAggregate(all)
}

// loadConfig returns the default combat config, optionally overridden by a
// viper-readable config file with keys combat_range, projectile_speed,
// projectile_lifetime, pool_capacity.
func loadConfig(path string) (game.Config, error) {
	cfg := game.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("combat_range", cfg.CombatRange)
	v.SetDefault("projectile_speed", cfg.ProjectileSpeed)
	v.SetDefault("projectile_lifetime", cfg.ProjectileLifetime)
	v.SetDefault("pool_capacity", cfg.PoolCapacity)
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	cfg.CombatRange = v.GetFloat64("combat_range")
	cfg.ProjectileSpeed = v.GetFloat64("projectile_speed")
	cfg.ProjectileLifetime = v.GetFloat64("projectile_lifetime")
	cfg.PoolCapacity = v.GetInt("pool_capacity")
	return cfg, nil
}

func buildScenario(name string, seed int64, cfg game.Config) *game.TestSim {
	base := []game.SimOption{
		game.WithConfig(cfg),
		game.WithSeed(seed),
		game.WithAutoTargeting(),
	}
	switch name {
	case "capital-assault":
		return game.NewTestSim(append(base,
			game.WithFriendly(game.ArchetypeFighter, -250, 0, -900),
			game.WithFriendly(game.ArchetypeFighter, -150, 0, -950),
			game.WithFriendly(game.ArchetypeInterceptor, -50, 0, -1000),
			game.WithFriendly(game.ArchetypeInterceptor, 50, 0, -1000),
			game.WithHostile(game.ArchetypeCruiser, 0, 0, 1100),
			game.WithHostile(game.ArchetypeStation, 400, 0, 1500),
		)...)
	default: // skirmish
		return game.NewTestSim(append(base,
			game.WithFriendly(game.ArchetypeFighter, -300, 0, -900),
			game.WithFriendly(game.ArchetypeFighter, -200, 0, -950),
			game.WithFriendly(game.ArchetypeInterceptor, -100, 0, -1000),
			game.WithFriendly(game.ArchetypeCruiser, 0, 0, -1200),
			game.WithHostile(game.ArchetypeFighter, 300, 0, 900),
			game.WithHostile(game.ArchetypeFighter, 200, 0, 950),
			game.WithHostile(game.ArchetypeInterceptor, 100, 0, 1000),
			game.WithHostile(game.ArchetypeCruiser, 0, 0, 1200),
		)...)
	}
}

func runScenario(name string, runIndex int, seed int64, ticks int, cfg game.Config) runStats {
	ts := buildScenario(name, seed, cfg)
	ts.RunTicks(ticks)

	stats := runStats{
		runIndex:        runIndex,
		seed:            seed,
		firstFireTick:   -1,
		firstHitTick:    -1,
		firstKillTick:   -1,
		firstEvadeTick:  -1,
		firstPoolNotice: -1,
		shots:           ts.Director.ShotsFired,
		hits:            ts.Director.Hits,
		dropped:         ts.Director.ShotsDropped,
		kills:           ts.Director.Kills,
	}

	for _, e := range ts.SimLog.Entries() {
		switch e.Category {
		case "fire":
			if stats.firstFireTick < 0 {
				stats.firstFireTick = e.Tick
			}
		case "hit":
			if stats.firstHitTick < 0 {
				stats.firstHitTick = e.Tick
			}
		case "destroy":
			if stats.firstKillTick < 0 {
				stats.firstKillTick = e.Tick
			}
		case "mode":
			stats.modeChanges++
			if stats.firstEvadeTick < 0 && strings.HasSuffix(e.Value, "evade") {
				stats.firstEvadeTick = e.Tick
			}
		case "notice":
			if stats.firstPoolNotice < 0 {
				stats.firstPoolNotice = e.Tick
			}
		}
	}
	stats.friendlyLeft = len(ts.AllByTeam(game.TeamFriendly))
	stats.hostileLeft = len(ts.AllByTeam(game.TeamHostile))
	return stats
}

func printRun(s runStats) {
	fmt.Printf("--- run %d (seed %d) ---\n", s.runIndex, s.seed)
	fmt.Printf("  first: fire=%s hit=%s kill=%s evade=%s pool_notice=%s\n",
		tickStr(s.firstFireTick), tickStr(s.firstHitTick), tickStr(s.firstKillTick),
		tickStr(s.firstEvadeTick), tickStr(s.firstPoolNotice))
	fmt.Printf("  shots=%d hits=%d (%.0f%%) dropped=%d kills=%d mode_changes=%d\n",
		s.shots, s.hits, pct(s.hits, s.shots), s.dropped, s.kills, s.modeChanges)
	fmt.Printf("  survivors: friendly=%d hostile=%d\n\n", s.friendlyLeft, s.hostileLeft)
}

func printAggregate(all []runStats) {
	if len(all) == 0 {
		return
	}
	var shots, hits, dropped, kills, modeChanges int
	for _, s := range all {
		shots += s.shots
		hits += s.hits
		dropped += s.dropped
		kills += s.kills
		modeChanges += s.modeChanges
	}
	n := float64(len(all))
	fmt.Printf("=== aggregate over %d runs ===\n", len(all))
	fmt.Printf("  avg shots=%.0f hits=%.0f (%.0f%%) dropped=%.0f kills=%.1f mode_changes=%.0f\n",
		float64(shots)/n, float64(hits)/n, pct(hits, shots),
		float64(dropped)/n, float64(kills)/n, float64(modeChanges)/n)
}

func tickStr(t int) string {
	if t < 0 {
		return "never"
	}
	return fmt.Sprintf("T%d", t)
}

func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return 100 * float64(num) / float64(den)
}
