package main

import (
	"strconv"
	"strings"
)

type record struct {
	Port         int
	Rotations    int32
	Millidegrees int32
	Motor        string
}

// Degrees flattens the rotations/millidegrees pair back into one angle.
func (r record) Degrees() float64 {
	return float64(r.Rotations)*360 + float64(r.Millidegrees)/1000
}

// parseLine accepts one report line and rejects everything else.
func parseLine(s string) (record, bool) {
	fields := strings.Fields(s)
	if len(fields) != 5 || fields[0] != "tacho" {
		return record{}, false
	}
	port, err := strconv.Atoi(fields[1])
	if err != nil {
		return record{}, false
	}
	rot, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return record{}, false
	}
	mdeg, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil {
		return record{}, false
	}
	return record{
		Port:         port,
		Rotations:    int32(rot),
		Millidegrees: int32(mdeg),
		Motor:        fields[4],
	}, true
}
