package persist

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/world"
)

const snapshotVersion = 1

// Snapshot is a saved run: the current level plus every entity marked for
// serialization. Entity references are indices into Entities.
type Snapshot struct {
	Version  int            `json:"version"`
	RunID    uuid.UUID      `json:"run_id"`
	SavedAt  time.Time      `json:"saved_at"`
	Seed     int64          `json:"seed"`
	Turn     int            `json:"turn"`
	Map      *world.Map     `json:"map"`
	Entities []EntityRecord `json:"entities"`
	Log      []string       `json:"log,omitempty"`
}

// EntityRecord holds one entity's components. Absent components are nil.
type EntityRecord struct {
	Name       string                  `json:"name,omitempty"`
	Player     bool                    `json:"player,omitempty"`
	Monster    bool                    `json:"monster,omitempty"`
	BlocksTile bool                    `json:"blocks_tile,omitempty"`
	Item       bool                    `json:"item,omitempty"`
	Consumable bool                    `json:"consumable,omitempty"`
	Position   *component.Position     `json:"position,omitempty"`
	Renderable *component.Renderable   `json:"renderable,omitempty"`
	ViewRange  *int                    `json:"view_range,omitempty"`
	Stats      *component.Stats        `json:"stats,omitempty"`
	Ranged     *component.Ranged       `json:"ranged,omitempty"`
	Area       *component.AreaOfEffect `json:"area,omitempty"`
	Effects    *component.ItemEffects  `json:"effects,omitempty"`
	Spell      *component.Spell        `json:"spell,omitempty"`
	Owner      *int                    `json:"owner,omitempty"`
	KnownBy    *int                    `json:"known_by,omitempty"`
}

// Capture copies the serializable part of ws into a snapshot.
func Capture(ws *world.State, runID uuid.UUID) *Snapshot {
	ids := ws.Serialize.IDs()
	index := make(map[ecs.EntityID]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	ref := func(id ecs.EntityID) *int {
		if i, ok := index[id]; ok {
			return &i
		}
		return nil
	}

	snap := &Snapshot{
		Version:  snapshotVersion,
		RunID:    runID,
		SavedAt:  time.Now().UTC(),
		Map:      ws.Map(),
		Entities: make([]EntityRecord, 0, len(ids)),
	}
	for _, id := range ids {
		rec := EntityRecord{
			Player:     ws.Players.Has(id),
			Monster:    ws.Monsters.Has(id),
			BlocksTile: ws.Blockers.Has(id),
			Item:       ws.Items.Has(id),
			Consumable: ws.Consumables.Has(id),
		}
		if n, ok := ws.Names.Get(id); ok {
			rec.Name = string(n)
		}
		if p, ok := ws.Positions.Get(id); ok {
			c := *p
			rec.Position = &c
		}
		if r, ok := ws.Renderables.Get(id); ok {
			c := *r
			rec.Renderable = &c
		}
		if v, ok := ws.Viewsheds.Get(id); ok {
			r := v.Range
			rec.ViewRange = &r
		}
		if st, ok := ws.Stats.Get(id); ok {
			rec.Stats = cloneStats(st)
		}
		if r, ok := ws.Ranged.Get(id); ok {
			rec.Ranged = &r
		}
		if a, ok := ws.AreaEffects.Get(id); ok {
			rec.Area = &a
		}
		if fx, ok := ws.ItemEffects.Get(id); ok {
			c := *fx
			rec.Effects = &c
		}
		if sp, ok := ws.Spells.Get(id); ok {
			rec.Spell = &sp
		}
		if b, ok := ws.Backpacks.Get(id); ok {
			rec.Owner = ref(b.Owner)
		}
		if k, ok := ws.KnownSpells.Get(id); ok {
			rec.KnownBy = ref(k.Owner)
		}
		snap.Entities = append(snap.Entities, rec)
	}
	return snap
}

// Apply replaces every entity in ws with the snapshot's and installs its map.
// A snapshot that fails validation leaves ws untouched. Viewsheds come back
// dirty.
func (s *Snapshot) Apply(ws *world.State) error {
	if s.Map == nil {
		return fmt.Errorf("%w: snapshot has no map", ErrCorrupt)
	}
	players := 0
	for _, rec := range s.Entities {
		for _, r := range []*int{rec.Owner, rec.KnownBy} {
			if r != nil && (*r < 0 || *r >= len(s.Entities)) {
				return fmt.Errorf("%w: entity reference %d out of range", ErrCorrupt, *r)
			}
		}
		if rec.Player {
			players++
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: snapshot has %d players", ErrCorrupt, players)
	}

	for _, id := range ws.ECS.Entities() {
		ws.ECS.Destroy(id)
	}
	ws.ECS.FlushDestroyQueue()
	ws.Player = 0

	s.Map.Restore()
	ws.SetMap(s.Map)

	ids := make([]ecs.EntityID, len(s.Entities))
	for i := range s.Entities {
		ids[i] = ws.ECS.CreateEntity()
	}
	for i, rec := range s.Entities {
		id := ids[i]
		ws.Serialize.Set(id, component.SerializeMe{})
		if rec.Name != "" {
			ws.Names.Set(id, component.Name(rec.Name))
		}
		if rec.Player {
			ws.Players.Set(id, component.Player{})
			ws.Player = id
		}
		if rec.Monster {
			ws.Monsters.Set(id, component.Monster{})
		}
		if rec.BlocksTile {
			ws.Blockers.Set(id, component.BlocksTile{})
		}
		if rec.Item {
			ws.Items.Set(id, component.Item{})
		}
		if rec.Consumable {
			ws.Consumables.Set(id, component.Consumable{})
		}
		if rec.Position != nil {
			p := *rec.Position
			ws.Positions.Set(id, &p)
		}
		if rec.Renderable != nil {
			r := *rec.Renderable
			ws.Renderables.Set(id, &r)
		}
		if rec.ViewRange != nil {
			ws.Viewsheds.Set(id, component.NewViewshed(*rec.ViewRange))
		}
		if rec.Stats != nil {
			ws.Stats.Set(id, cloneStats(rec.Stats))
		}
		if rec.Ranged != nil {
			ws.Ranged.Set(id, *rec.Ranged)
		}
		if rec.Area != nil {
			ws.AreaEffects.Set(id, *rec.Area)
		}
		if rec.Effects != nil {
			fx := *rec.Effects
			ws.ItemEffects.Set(id, &fx)
		}
		if rec.Spell != nil {
			ws.Spells.Set(id, *rec.Spell)
		}
		if rec.Owner != nil {
			ws.Backpacks.Set(id, component.InBackpack{Owner: ids[*rec.Owner]})
		}
		if rec.KnownBy != nil {
			ws.KnownSpells.Set(id, component.KnownSpell{Owner: ids[*rec.KnownBy]})
		}
	}
	return nil
}

func cloneStats(st *component.Stats) *component.Stats {
	c := &component.Stats{Power: st.Power, Defense: st.Defense, Pools: make(map[string]*component.Pool, len(st.Pools))}
	for k, p := range st.Pools {
		pc := *p
		c.Pools[k] = &pc
	}
	return c
}

// ==================== Sealing ====================

type envelope struct {
	Checksum string          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

// Seal encodes a snapshot with its blake2b-256 checksum.
func Seal(snap *Snapshot) ([]byte, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	sum := blake2b.Sum256(payload)
	return json.Marshal(envelope{Checksum: hex.EncodeToString(sum[:]), Payload: payload})
}

// Unseal verifies and decodes bytes produced by Seal.
func Unseal(data []byte) (*Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	want, err := hex.DecodeString(env.Checksum)
	if err != nil {
		return nil, fmt.Errorf("%w: bad checksum encoding", ErrCorrupt)
	}
	sum := blake2b.Sum256(env.Payload)
	if !bytes.Equal(sum[:], want) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	var snap Snapshot
	if err := json.Unmarshal(env.Payload, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, snap.Version)
	}
	return &snap, nil
}
