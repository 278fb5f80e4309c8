package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/decker502/dungeon/pkg/arena"
	"github.com/decker502/dungeon/pkg/config"
	"github.com/decker502/dungeon/pkg/embedded"
	"github.com/decker502/dungeon/pkg/storage"
	"github.com/decker502/dungeon/pkg/utils"
)

var (
	configDir string

	runTicks     int
	runDelta     float64
	runSeed      int64
	runAllies    int
	runAllyTypes []string
	runReinforce float64
	runPersist   bool
	runVerbose   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one match",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !runVerbose {
			log.SetOutput(io.Discard)
		}

		bundle, err := config.LoadAll(configDir)
		if err != nil {
			return err
		}

		var store storage.HighScoreStore = storage.NewMemoryHighScoreStore(0)
		if runPersist {
			store = storage.OpenHighScoreStore(bundle.Game.Persistence)
			if closer, ok := store.(io.Closer); ok {
				defer closer.Close()
			}
		}

		result, err := simulate(bundle, store, simulateOptions{
			Ticks:     runTicks,
			Delta:     runDelta,
			Seed:      runSeed,
			Allies:    runAllies,
			AllyTypes: runAllyTypes,
			Reinforce: runReinforce,
		}, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List unit types and their levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetOutput(io.Discard)
		units, err := config.LoadUnitConfig(embedded.Join(configDir, config.UnitsFile))
		if err != nil {
			return err
		}
		for _, unitType := range units.Types() {
			def, err := units.Definition(unitType)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-10s levels=%d\n", unitType, def.Attack.Kind, len(def.Levels))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runTicks, "ticks", 60*120, "最多推进的帧数")
	runCmd.Flags().Float64Var(&runDelta, "dt", 1.0/60.0, "每帧时间（秒）")
	runCmd.Flags().Int64Var(&runSeed, "seed", 1, "随机种子")
	runCmd.Flags().IntVar(&runAllies, "allies", 3, "开局友方数量")
	runCmd.Flags().StringSliceVar(&runAllyTypes, "ally-types", []string{"knight", "archer"}, "友方类型（轮流使用）")
	runCmd.Flags().Float64Var(&runReinforce, "reinforce", 4, "增援间隔（秒），0 表示不增援")
	runCmd.Flags().BoolVar(&runPersist, "persist", false, "使用 game.yaml 中的最高分存储")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "显示详细日志")
}

type simulateOptions struct {
	Ticks     int
	Delta     float64
	Seed      int64
	Allies    int
	AllyTypes []string
	Reinforce float64 // 模拟出兵建筑：每隔 Reinforce 秒加入一个友方
}

type simulateResult struct {
	Ticks      int
	WaveIndex  int
	Lost       bool
	HighScore  int
	Deaths     int
	AllyDeaths int
}

func (r simulateResult) String() string {
	outcome := "survived"
	if r.Lost {
		outcome = "lost"
	}
	return fmt.Sprintf("result: %s after %d ticks, wave %d, high score %d, deaths %d (allies %d)",
		outcome, r.Ticks, r.WaveIndex+1, r.HighScore, r.Deaths, r.AllyDeaths)
}

// simulate 推进一局直到失败或达到帧数上限
// 波次变化逐行写入 out
func simulate(bundle *config.Bundle, store storage.HighScoreStore, opts simulateOptions, out io.Writer) (simulateResult, error) {
	if opts.Delta <= 0 {
		return simulateResult{}, fmt.Errorf("dt must be positive, got %v", opts.Delta)
	}
	if len(opts.AllyTypes) == 0 {
		return simulateResult{}, fmt.Errorf("at least one ally type is required")
	}

	a, err := arena.New(bundle, store, utils.NewPRNGService(opts.Seed))
	if err != nil {
		return simulateResult{}, fmt.Errorf("failed to create arena: %w", err)
	}

	next := 0
	spawnAlly := func() error {
		unitType := opts.AllyTypes[next%len(opts.AllyTypes)]
		next++
		return a.SpawnAlly(unitType, 1)
	}
	for i := 0; i < opts.Allies; i++ {
		if err := spawnAlly(); err != nil {
			return simulateResult{}, err
		}
	}

	reinforce := utils.Timer{Delay: opts.Reinforce}
	var result simulateResult
	lastWave, wasBetween := -1, false

	for result.Ticks < opts.Ticks && !a.Lost() {
		if opts.Reinforce > 0 {
			reinforce.Advance(opts.Delta)
			for reinforce.TryConsume() {
				if err := spawnAlly(); err != nil {
					return simulateResult{}, err
				}
			}
		}

		a.Tick(opts.Delta)
		result.Ticks++

		for _, event := range a.DeathEvents() {
			result.Deaths++
			if event.IsAlly {
				result.AllyDeaths++
			}
		}

		seconds := float64(result.Ticks) * opts.Delta
		if wave := a.WaveIndex(); wave != lastWave {
			fmt.Fprintf(out, "[%7.2fs] wave %d started\n", seconds, wave+1)
			lastWave = wave
		}
		if between := a.Waves().IsBetweenWaves(); between != wasBetween {
			if between {
				fmt.Fprintf(out, "[%7.2fs] wave %d cleared\n", seconds, a.WaveIndex()+1)
				// 间歇期间重新派出开局友方，下一波开始时生成
				for i := 0; i < opts.Allies; i++ {
					if err := spawnAlly(); err != nil {
						return simulateResult{}, err
					}
				}
			}
			wasBetween = between
		}
	}

	result.WaveIndex = a.WaveIndex()
	result.Lost = a.Lost()
	result.HighScore = a.HighScore()
	return result, nil
}
