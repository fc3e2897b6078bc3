package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Latency records elapsed time in milliseconds
func Latency(d time.Duration) Field {
	return Field{Key: "latency_ms", Value: float64(d.Microseconds()) / 1000.0}
}

// Graph and community fields shared by the engine and the CLI

func Nodes(n int) Field {
	return Field{Key: "nodes", Value: n}
}

func Edges(n int) Field {
	return Field{Key: "edges", Value: n}
}

func AggregationLevel(level int) Field {
	return Field{Key: "aggregation_level", Value: level}
}

func Modularity(q float64) Field {
	return Field{Key: "modularity", Value: q}
}

func Communities(n int) Field {
	return Field{Key: "communities", Value: n}
}

func RunID(id string) Field {
	return Field{Key: "run_id", Value: id}
}

func Component(name string) Field {
	return Field{Key: "component", Value: name}
}
