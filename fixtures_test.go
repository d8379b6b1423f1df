package mapper

import "time"

type status string

type source struct {
	ID     int
	Name   string
	Count  int64
	Score  float64
	Ratio  float32
	Ptr    *int
	Status status
	Secret string
	hidden string
}

type dest struct {
	ID     int
	Name   string
	Count  int32
	Score  int
	Ratio  float64
	Ptr    int
	Status string
	Extra  string
	hidden string
}

type incompatibleSource struct {
	Name string
}

type incompatibleDest struct {
	Name int
}

type runeSource struct {
	Code int
}

type runeDest struct {
	Code string
}

type inner struct {
	X int
}

type outer struct {
	First  int
	Inner  inner
	Ptr    *inner
	When   time.Time
	Values []int
}

type person struct {
	Name    string
	Surname string
	Born    string
}

type card struct {
	Title  string
	Name   string
	BornOn time.Time
}
