package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/bus"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// Rank points a captain accrues per event.
const (
	pointsWin     = 10
	pointsDraw    = 4
	pointsLoss    = 1
	pointsRecruit = 5
)

// RankForPoints maps accumulated rank points to the captain ladder.
func RankForPoints(points int) models.CaptainRank {
	switch {
	case points >= 1000:
		return models.CaptainLegendary
	case points >= 500:
		return models.CaptainElite
	case points >= 250:
		return models.CaptainVeteran
	case points >= 100:
		return models.CaptainExperienced
	default:
		return models.CaptainRookie
	}
}

// sortByStrength orders teams best-first: points, then wins, then name so the
// order is deterministic across recomputations.
func sortByStrength(teams []models.Team) {
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Points() != teams[j].Points() {
			return teams[i].Points() > teams[j].Points()
		}
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		return teams[i].Name < teams[j].Name
	})
}

// RankingsRefresher re-derives team ranking positions and captain rank labels
// in the background: once per tick, and once per change signal so an edit in
// another instance shows up without waiting for the next tick. Both
// recomputes write only rows that actually changed, so the refresher's own
// writes converge instead of re-triggering it forever.
type RankingsRefresher struct {
	engine   *store.Engine
	teams    *TeamService
	interval time.Duration
	signals  chan struct{}
	unsub    func()
	stop     chan struct{}
	done     chan struct{}
}

// NewRankingsRefresher creates a refresher; Start begins its loop.
func NewRankingsRefresher(engine *store.Engine, teams *TeamService, changeBus bus.Bus, interval time.Duration) *RankingsRefresher {
	rr := &RankingsRefresher{
		engine:   engine,
		teams:    teams,
		interval: interval,
		signals:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	rr.unsub = changeBus.Subscribe(func() {
		select {
		case rr.signals <- struct{}{}:
		default: // a refresh is already pending, coalesce
		}
	})
	return rr
}

// Start runs the refresh loop in a goroutine.
func (rr *RankingsRefresher) Start() {
	log.Printf("Rankings refresher starting with interval: %v", rr.interval)
	go rr.run()
}

// Stop signals the refresher to stop and waits for it to finish.
func (rr *RankingsRefresher) Stop() {
	rr.unsub()
	close(rr.stop)
	<-rr.done
	log.Println("Rankings refresher stopped.")
}

func (rr *RankingsRefresher) run() {
	defer close(rr.done)
	ticker := time.NewTicker(rr.interval)
	defer ticker.Stop()

	for {
		select {
		case <-rr.stop:
			return
		case <-ticker.C:
			rr.refresh()
		case <-rr.signals:
			rr.refresh()
		}
	}
}

func (rr *RankingsRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := rr.teams.RecomputeRankings(ctx); err != nil {
		log.Printf("ERROR: Rankings refresh failed: %v", err)
	}
	if err := rr.recomputeCaptainRanks(ctx); err != nil {
		log.Printf("ERROR: Captain rank refresh failed: %v", err)
	}
}

// recomputeCaptainRanks re-derives each captain's rank label from points,
// writing back only rows whose label drifted.
func (rr *RankingsRefresher) recomputeCaptainRanks(ctx context.Context) error {
	all, err := store.GetAll[models.CaptainStats](ctx, rr.engine, store.CaptainStats)
	if err != nil {
		return err
	}
	for i := range all {
		rank := RankForPoints(all[i].RankPoints)
		if all[i].Rank == rank {
			continue
		}
		all[i].Rank = rank
		if err := rr.engine.Put(ctx, store.CaptainStats, &all[i]); err != nil {
			return err
		}
	}
	return nil
}
