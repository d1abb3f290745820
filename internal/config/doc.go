// Package config provides configuration parsing for the observable bench.
//
// The configuration is stored in observable-bench.json. This package
// handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "name": "wide",
//	  "graph": {
//	    "values": 64,
//	    "depth": 2,
//	    "fanout": 8,
//	    "arrayLen": 16
//	  },
//	  "writes": 10000,
//	  "metrics": {
//	    "enabled": true,
//	    "addr": ":9090",
//	    "namespace": "observable"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "observable"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := cfg.NewLogger(os.Stderr)
package config
