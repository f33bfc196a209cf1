package autoplay

import (
	"context"
	"fmt"
	"net/http"

	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/internal/domain/match"
	"github.com/okian/matchday/internal/domain/progression"
	"github.com/okian/matchday/pkg/logger"
)

var trainingPlan = []progression.Attribute{progression.Attacking, progression.Technique, progression.Fitness}

// player drives one career through the API.
type player struct {
	c      *client
	cfg    *Config
	log    logger.Logger
	index  int
	career service.CareerView
	stats  careerStats
}

func careerPath(id, suffix string) string {
	return careersPath + "/" + id + suffix
}

// playCareer creates a career, plays the configured number of matches and
// verifies the league tables after every one of them.
func playCareer(ctx context.Context, c *client, cfg *Config, index int) (careerStats, error) {
	p := &player{c: c, cfg: cfg, index: index, log: logger.Get().With(logger.Int("career", index))}
	if err := p.create(ctx); err != nil {
		return p.stats, fmt.Errorf("create career %d: %w", index, err)
	}
	for n := range cfg.Matches {
		if err := p.prepare(ctx); err != nil {
			return p.stats, fmt.Errorf("career %s match %d: prepare: %w", p.career.ID, n+1, err)
		}
		if err := p.playMatch(ctx, n); err != nil {
			return p.stats, fmt.Errorf("career %s match %d: %w", p.career.ID, n+1, err)
		}
		tables, err := verifyStandings(ctx, c, p.career)
		p.stats.tables += tables
		if err != nil {
			return p.stats, fmt.Errorf("career %s after match %d: %w", p.career.ID, n+1, err)
		}
		if err := p.train(ctx, n); err != nil {
			return p.stats, fmt.Errorf("career %s match %d: train: %w", p.career.ID, n+1, err)
		}
	}
	if !cfg.SkipSave {
		if err := p.saveAndReload(ctx); err != nil {
			return p.stats, fmt.Errorf("career %s: %w", p.career.ID, err)
		}
	}
	return p.stats, nil
}

func (p *player) create(ctx context.Context) error {
	req := map[string]any{
		"name":    fmt.Sprintf("Autoplay %03d", p.index+1),
		"sandbox": p.cfg.Sandbox,
	}
	if err := p.c.command(ctx, http.MethodPost, careersPath, req, &p.career); err != nil {
		return err
	}
	p.stats.created = true
	p.log.Debug(ctx, "career created",
		logger.String("id", p.career.ID),
		logger.String("team", p.career.Player.Team))
	return nil
}

// prepare clears pending decisions and tops up energy before a match.
func (p *player) prepare(ctx context.Context) error {
	for range maxPrepareSteps {
		switch {
		case p.career.Event != nil:
			// The first choice accepts a call-up.
			if err := p.c.command(ctx, http.MethodPost, careerPath(p.career.ID, "/narrative"),
				map[string]int{"choice": 0}, &p.career); err != nil {
				return err
			}
			p.stats.events++
		case p.career.Player.Energy < restEnergy:
			err := p.c.command(ctx, http.MethodPost, careerPath(p.career.ID, "/buy"),
				map[string]string{"item": energyDrink}, &p.career)
			switch {
			case err == nil:
				p.stats.items++
			case hasCode(err, codeInsufficientCash) && p.career.Player.Sandbox:
				if err := p.c.command(ctx, http.MethodPost, careerPath(p.career.ID, "/bank"),
					map[string]string{"action": service.BankGrant}, &p.career); err != nil {
					return err
				}
			case hasCode(err, codeInsufficientCash):
				return nil
			default:
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// playMatch plays one match to the end with the clock paused.
func (p *player) playMatch(ctx context.Context, n int) error {
	id := p.career.ID
	var view service.MatchView
	if err := p.c.command(ctx, http.MethodPost, careerPath(id, "/match"),
		map[string]bool{"international": p.career.CallUp}, &view); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := p.c.command(ctx, http.MethodPut, careerPath(id, "/match/speed"),
		map[string]int{"speed": int(match.Paused)}, &view); err != nil {
		return fmt.Errorf("speed: %w", err)
	}
	if n%2 == 1 {
		if err := p.c.command(ctx, http.MethodPut, careerPath(id, "/match/stance"),
			map[string]string{"stance": string(match.Aggressive)}, &view); err != nil {
			return fmt.Errorf("stance: %w", err)
		}
	}
	if err := p.c.command(ctx, http.MethodPost, careerPath(id, "/match/kickoff"), nil, &view); err != nil {
		return fmt.Errorf("kickoff: %w", err)
	}

	var hero service.HeroResult
	if err := p.c.command(ctx, http.MethodPost, careerPath(id, "/match/hero"), nil, &hero); err != nil && !conflict(err) {
		return fmt.Errorf("hero: %w", err)
	}

	var tick service.TickResult
	if err := p.c.command(ctx, http.MethodPost, careerPath(id, "/match/simulate"), nil, &tick); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	if tick.Match.Phase != match.FullTime {
		return fmt.Errorf("simulate ended in phase %s", tick.Match.Phase)
	}

	var res service.FinishResult
	if err := p.c.command(ctx, http.MethodPost, careerPath(id, "/match/interview"),
		map[string]int{"choice": n % interviewAnswers}, &res); err != nil {
		return fmt.Errorf("interview: %w", err)
	}
	p.career = res.Career

	p.stats.matches++
	p.stats.goals += res.Result.Goals
	if res.Result.IsInternational {
		p.stats.internationals++
	}
	if res.Outcome.Season != nil {
		p.stats.seasons++
		p.log.Info(ctx, "season ended",
			logger.String("id", id),
			logger.String("movement", string(res.Outcome.Season.Movement)),
			logger.String("league", p.career.LeagueName))
	}
	if p.cfg.Verbose {
		p.log.Info(ctx, "match played",
			logger.String("id", id),
			logger.String("opponent", res.Result.Opponent),
			logger.Int("home", res.Result.HomeScore),
			logger.Int("away", res.Result.AwayScore),
			logger.Float64("rating", res.Result.Rating),
			logger.Bool("international", res.Result.IsInternational))
	}
	return nil
}

// train spends spare energy on the next attribute in the plan.
func (p *player) train(ctx context.Context, n int) error {
	if p.career.Event != nil || p.career.Player.Energy < trainEnergy {
		return nil
	}
	var res service.TrainResult
	err := p.c.command(ctx, http.MethodPost, careerPath(p.career.ID, "/train"),
		map[string]string{"attribute": string(trainingPlan[n%len(trainingPlan)])}, &res)
	if conflict(err) {
		return nil
	}
	if err != nil {
		return err
	}
	p.career = res.Career
	p.stats.trainings++
	return nil
}

// saveAndReload saves the career and checks the reloaded copy matches it.
func (p *player) saveAndReload(ctx context.Context) error {
	var slot struct {
		Name string `json:"slot"`
	}
	if err := p.c.command(ctx, http.MethodPost, careerPath(p.career.ID, "/save"), map[string]string{}, &slot); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	var loaded service.CareerView
	if err := p.c.command(ctx, http.MethodPost, loadPath, map[string]string{"slot": slot.Name}, &loaded); err != nil {
		return fmt.Errorf("load %s: %w", slot.Name, err)
	}
	if loaded.Week != p.career.Week ||
		loaded.Player.Cash != p.career.Player.Cash ||
		loaded.Player.Team != p.career.Player.Team ||
		loaded.Player.MatchesPlayed != p.career.Player.MatchesPlayed {
		return fmt.Errorf("reloaded career %s differs from %s", loaded.ID, p.career.ID)
	}
	return nil
}
