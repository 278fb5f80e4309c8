package systems

import (
	"errors"
	"testing"

	"github.com/decker502/dungeon/pkg/config"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/storage"
)

// fakeField 可控的战场，只记录数量
type fakeField struct {
	allies     int
	enemies    int
	clearCalls int
}

func (f *fakeField) AllyCount() int  { return f.allies }
func (f *fakeField) EnemyCount() int { return f.enemies }
func (f *fakeField) ClearAllies() {
	f.allies = 0
	f.clearCalls++
}

// collect 模拟战场取走生成队列
func (f *fakeField) collect(ws *WaveSystem) {
	f.enemies += ws.SpawnQueue().Len()
	ws.ClearSpawnQueue()
}

// clearWave 生成本波敌人并让它们全部死亡
func (f *fakeField) clearWave(ws *WaveSystem, dt float64) {
	ws.Update(dt, f)
	f.collect(ws)
	f.enemies = 0
	ws.Update(dt, f)
}

// failingStore 保存总是失败的存储
type failingStore struct{}

func (failingStore) Load() (int, error) { return 0, errors.New("unavailable") }
func (failingStore) Save(int) error     { return errors.New("unavailable") }

func singleGroupTable(amount, perBurst int, startDelay, interval float64) *config.WaveTable {
	return &config.WaveTable{
		DelayBetweenWaves: 2,
		Waves: [][]config.SpawnGroupConfig{
			{{Type: "dummy", Level: 1, Amount: amount, SpawnAmount: perBurst, StartDelay: startDelay, SpawnInterval: interval}},
		},
	}
}

func newTestWaveSystem(table *config.WaveTable, store storage.HighScoreStore) *WaveSystem {
	return NewWaveSystem(ecs.NewEntityManager(), table, NewSpawnQueue(), store)
}

func TestWaveSystem_Spawning(t *testing.T) {
	t.Run("起始延迟之前不生成", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(3, 1, 2, 1), nil)
		field := &fakeField{allies: 1}

		ws.Update(1.0, field)
		if ws.SpawnQueue().Len() != 0 {
			t.Errorf("Expected no spawns before start delay, got %d", ws.SpawnQueue().Len())
		}

		// 延迟到期的同一帧也推进批次计时器
		ws.Update(1.0, field)
		ws.Update(1.0, field)
		if ws.SpawnQueue().Len() != 2 {
			t.Errorf("Expected 2 spawns, got %d", ws.SpawnQueue().Len())
		}
	})

	t.Run("最后一批不超过剩余数量", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(5, 3, 0, 1), nil)
		field := &fakeField{allies: 1, enemies: 1}

		ws.Update(1.0, field)
		ws.Update(1.0, field)
		ws.Update(1.0, field)

		if ws.SpawnQueue().Len() != 5 {
			t.Errorf("Expected exactly 5 queued, got %d", ws.SpawnQueue().Len())
		}
		if ws.RemainingInWave() != 0 {
			t.Errorf("Expected 0 remaining, got %d", ws.RemainingInWave())
		}
	})

	t.Run("慢帧补偿多批", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(10, 2, 0, 1), nil)
		field := &fakeField{allies: 1, enemies: 1}

		ws.Update(3.5, field)
		if ws.SpawnQueue().Len() != 6 {
			t.Errorf("Expected 3 bursts of 2, got %d", ws.SpawnQueue().Len())
		}
	})

	t.Run("零间隔一帧生成全部", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(7, 2, 0, 0), nil)
		field := &fakeField{allies: 1, enemies: 1}

		ws.Update(0.016, field)
		if ws.SpawnQueue().Len() != 7 {
			t.Errorf("Expected all 7 spawned, got %d", ws.SpawnQueue().Len())
		}
	})

	t.Run("生成请求携带类型与等级", func(t *testing.T) {
		table := &config.WaveTable{
			DelayBetweenWaves: 1,
			Waves: [][]config.SpawnGroupConfig{{
				{Type: "fighter", Level: 2, Amount: 1, SpawnAmount: 1, SpawnInterval: 0},
				{Type: "archer", Level: 1, Amount: 1, SpawnAmount: 1, SpawnInterval: 0},
			}},
		}
		ws := newTestWaveSystem(table, nil)
		ws.Update(0.1, &fakeField{allies: 1, enemies: 1})

		want := []SpawnRequest{{Type: "fighter", Level: 2}, {Type: "archer", Level: 1}}
		got := ws.SpawnQueue().Pending()
		if len(got) != len(want) {
			t.Fatalf("Expected %d requests, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("request %d: got %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("清空队列", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(2, 2, 0, 0), nil)
		ws.Update(0.1, &fakeField{allies: 1, enemies: 1})
		ws.ClearSpawnQueue()
		if ws.SpawnQueue().Len() != 0 {
			t.Error("Queue should be empty after ClearSpawnQueue")
		}
	})
}

func TestWaveSystem_WinCondition(t *testing.T) {
	store := storage.NewMemoryHighScoreStore(0)
	ws := newTestWaveSystem(singleGroupTable(3, 1, 0, 1), store)
	field := &fakeField{allies: 1}

	for i := 0; i < 3; i++ {
		ws.Update(1.0, field)
		field.collect(ws)
	}
	if field.enemies != 3 {
		t.Fatalf("Expected 3 spawned, got %d", field.enemies)
	}
	if ws.IsBetweenWaves() {
		t.Fatal("Should not be between waves while enemies are alive")
	}

	field.enemies = 0
	ws.Update(0.1, field)

	if !ws.IsBetweenWaves() {
		t.Fatal("Expected BetweenWaves after all enemies died")
	}
	if ws.HighScore() != 1 {
		t.Errorf("HighScore: got %d, want 1", ws.HighScore())
	}
	if score, _ := store.Load(); score != 1 {
		t.Errorf("Persisted score: got %d, want 1", score)
	}
}

func TestWaveSystem_LossCondition(t *testing.T) {
	store := storage.NewMemoryHighScoreStore(0)
	ws := newTestWaveSystem(singleGroupTable(5, 1, 0, 1), store)
	field := &fakeField{allies: 1}

	ws.Update(1.0, field)
	field.enemies = 1
	field.allies = 0
	ws.Update(0.1, field)

	if !ws.Lost() {
		t.Fatal("Expected loss when allies are gone")
	}
	if ws.HighScore() != 1 {
		t.Errorf("HighScore: got %d, want 1", ws.HighScore())
	}

	queued := ws.SpawnQueue().Len()
	for i := 0; i < 5; i++ {
		ws.Update(1.0, field)
	}
	if store.SaveCount() != 1 {
		t.Errorf("High score should be saved once, got %d saves", store.SaveCount())
	}
	if ws.SpawnQueue().Len() != queued {
		t.Error("Lost match should not keep spawning")
	}
}

func TestWaveSystem_BetweenWaves(t *testing.T) {
	t.Run("间歇期间清空友方且不判负", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(1, 1, 0, 0), nil)
		field := &fakeField{allies: 2}

		ws.Update(0.1, field)
		if ws.IsBetweenWaves() {
			t.Fatal("Queued enemies count as alive")
		}
		field.collect(ws)
		field.enemies = 0
		ws.Update(0.1, field)
		if !ws.IsBetweenWaves() {
			t.Fatal("Expected BetweenWaves")
		}

		ws.Update(0.5, field)
		if field.allies != 0 || field.clearCalls == 0 {
			t.Error("Allies should be cleared between waves")
		}
		if ws.Lost() {
			t.Error("Cleared allies between waves must not cause a loss")
		}
		if !almostEqual(ws.InterWaveTimeLeft(), 1.5) {
			t.Errorf("InterWaveTimeLeft: got %v, want 1.5", ws.InterWaveTimeLeft())
		}
	})

	t.Run("间歇结束进入下一波", func(t *testing.T) {
		table := &config.WaveTable{
			DelayBetweenWaves: 1,
			Waves: [][]config.SpawnGroupConfig{
				{{Type: "dummy", Level: 1, Amount: 1, SpawnAmount: 1}},
				{{Type: "fighter", Level: 1, Amount: 4, SpawnAmount: 1, SpawnInterval: 1}},
			},
		}
		ws := newTestWaveSystem(table, nil)
		field := &fakeField{allies: 1}

		field.clearWave(ws, 0.1)
		ws.Update(1.0, field)

		if ws.IsBetweenWaves() {
			t.Fatal("Expected next wave to start")
		}
		if ws.WaveIndex() != 1 {
			t.Errorf("WaveIndex: got %d, want 1", ws.WaveIndex())
		}
		if ws.RemainingInWave() != 4 {
			t.Errorf("RemainingInWave: got %d, want 4", ws.RemainingInWave())
		}
	})

	t.Run("波次表用尽后回到第一波", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(2, 2, 0, 0), nil)
		field := &fakeField{allies: 1}

		for wave := 0; wave < 3; wave++ {
			field.clearWave(ws, 0.1)
			ws.Update(2.0, field) // 间歇结束
			field.allies = 1
		}

		if ws.WaveIndex() != 3 {
			t.Errorf("WaveIndex should keep advancing, got %d", ws.WaveIndex())
		}
		if ws.RemainingInWave() != 2 {
			t.Errorf("Wrapped wave should reload first wave groups, got %d", ws.RemainingInWave())
		}
		if ws.HighScore() != 3 {
			t.Errorf("HighScore: got %d, want 3", ws.HighScore())
		}
	})
}

func TestWaveSystem_HighScore(t *testing.T) {
	t.Run("创建时载入已保存的最高分", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(1, 1, 0, 1), storage.NewMemoryHighScoreStore(5))
		if ws.HighScore() != 5 {
			t.Errorf("HighScore: got %d, want 5", ws.HighScore())
		}
	})

	t.Run("较低的波次不降低最高分", func(t *testing.T) {
		store := storage.NewMemoryHighScoreStore(5)
		ws := newTestWaveSystem(singleGroupTable(1, 1, 0, 0), store)
		ws.Update(0.1, &fakeField{})

		if !ws.Lost() || ws.HighScore() != 5 {
			t.Errorf("Expected loss keeping high score 5, got lost=%v score=%d", ws.Lost(), ws.HighScore())
		}
	})

	t.Run("存储失败不影响对局", func(t *testing.T) {
		ws := newTestWaveSystem(singleGroupTable(1, 1, 0, 0), failingStore{})
		(&fakeField{allies: 1}).clearWave(ws, 0.1)

		if !ws.IsBetweenWaves() || ws.HighScore() != 1 {
			t.Errorf("Expected wave cleared with score 1, got between=%v score=%d", ws.IsBetweenWaves(), ws.HighScore())
		}
	})
}
