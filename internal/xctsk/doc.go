// Package xctsk parses competition task reports and writes XCTrack task files.
//
// A report is a tab separated table copied from a task briefing:
//
//	No	Leg	ID	Radius	Open	Close	Coordinates	Altitude
//	1	0.0 km	B01TO	400 m	11:00	13:00	Lat: 36.13621 Lon: 137.93811	1120 m
//	SS	3.2 km	B17	3000 m	12:30	15:00	Lat: 36.17 Lon: 137.9	850 m
//	ES	41.0 km	B44	1000 m	12:30	16:50	Lat: 36.2 Lon: 138.01	640 m
//	4	42.1 km	B45	400 m	12:30	16:50	Lat: 36.21 Lon: 138.02	630 m
//	Start gates: 12:30, 12:45
//
// Rows need at least eight tab fields; shorter rows are reported as skipped.
// The goal deadline is read from the close time of the second-to-last line.
//
// # Output
//
// The produced document is the XCTrack classic task:
//
//	{
//	  "version": 1,
//	  "taskType": "CLASSIC",
//	  "turnpoints": [{"radius": 400, "waypoint": {...}, "type": "TAKEOFF"}],
//	  "sss": {"type": "RACE", "direction": "EXIT", "timeGates": ["03:30:00Z"]},
//	  "goal": {"type": "CYLINDER", "deadline": "07:50:00Z"},
//	  "earthModel": "WGS84"
//	}
//
// Times are converted with a fixed hour offset; see package clock.
//
// # Validation
//
// Task files can be checked against an embedded JSON Schema (draft 2020-12)
// or a schema file supplied by the caller.
package xctsk
