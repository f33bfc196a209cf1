package autoplay

import "time"

// Config holds configuration for an autoplay run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Careers  int           // Number of careers to create
	Matches  int           // Matches played per career
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for run output
	Sandbox  bool          // Create sandbox careers
	SkipSave bool          // Skip the save and reload check
	Verbose  bool          // Enable verbose logging
}

// Stats holds run statistics.
type Stats struct {
	CareersCreated  int
	CareersFinished int
	CareersFailed   int
	MatchesPlayed   int
	Internationals  int
	Goals           int
	SeasonsEnded    int
	EventsResolved  int
	ItemsBought     int
	Trainings       int
	TablesVerified  int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

// careerStats is what one career contributed to the run.
type careerStats struct {
	created        bool
	matches        int
	internationals int
	goals          int
	seasons        int
	events         int
	items          int
	trainings      int
	tables         int
}

func (s *Stats) add(c careerStats) {
	if c.created {
		s.CareersCreated++
	}
	s.MatchesPlayed += c.matches
	s.Internationals += c.internationals
	s.Goals += c.goals
	s.SeasonsEnded += c.seasons
	s.EventsResolved += c.events
	s.ItemsBought += c.items
	s.Trainings += c.trainings
	s.TablesVerified += c.tables
}
