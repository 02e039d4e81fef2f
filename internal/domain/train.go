package domain

import "time"

type Train struct {
	Number            string
	Name              string
	Source            string
	Destination       string
	DepartureTime     string // HH:MM
	JourneyDuration   string // HH:MM
	TotalAcSeats      int
	TotalSleeperSeats int
	AcFarePaise       int64
	SleeperFarePaise  int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Schedule struct {
	ID                    int64
	TrainNumber           string
	DepartureDate         time.Time
	AcSeatsAvailable      int
	SleeperSeatsAvailable int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// JourneyView is the joined schedule+train row shown to users picking a journey.
type JourneyView struct {
	ScheduleID            int64
	TrainNumber           string
	TrainName             string
	Source                string
	Destination           string
	DepartureDate         time.Time
	DepartureTime         string
	AcSeatsAvailable      int
	AcFarePaise           int64
	SleeperSeatsAvailable int
	SleeperFarePaise      int64
}
