package bot

import "github.com/lab1702/ofbot/nav"

// SelectReachableObjects returns the candidates that pass keep and stand in
// an area reachable from start within maxRange travel distance, nearest
// first. A negative maxRange is unbounded.
func (b *Bot) SelectReachableObjects(candidates []Entity, keep func(Entity) bool, start *nav.Area, maxRange float64) []Entity {
	mesh := b.mesh()
	if start == nil || mesh == nil {
		return nil
	}

	byArea := make(map[*nav.Area][]Entity)
	for _, e := range candidates {
		if e == nil || (keep != nil && !keep(e)) {
			continue
		}
		if area := mesh.NearestArea(e.Position()); area != nil {
			byArea[area] = append(byArea[area], e)
		}
	}
	if len(byArea) == 0 {
		return nil
	}

	var out []Entity
	nav.SearchSurroundingAreas(start, maxRange, b.Team(), func(a *nav.Area, _ float64) bool {
		out = append(out, byArea[a]...)
		delete(byArea, a)
		return len(byArea) > 0
	})
	return out
}

// SelectRandomReachableEnemy picks a random enemy worth hunting: alive,
// neither cloaked nor disguised, and outside its respawn room
func (b *Bot) SelectRandomReachableEnemy() Character {
	mesh := b.mesh()

	var valid []Character
	for _, e := range b.world.Players(b.EnemyTeam()) {
		if e == nil || !e.IsAlive() || e.IsCloaked() || e.IsDisguised() {
			continue
		}
		if mesh != nil {
			if area := mesh.NearestArea(e.Position()); area != nil && area.RespawnRoom {
				continue
			}
		}
		valid = append(valid, e)
	}
	if len(valid) == 0 {
		return nil
	}
	return valid[b.rng.Intn(len(valid))]
}

