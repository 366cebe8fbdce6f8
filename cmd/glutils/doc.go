// Command glutils converts, inspects and reshapes JSON, JSONL and CSV record
// files, including directories of same-shaped shards.
//
// Configuration is read from the -config YAML file and GLUTILS_* environment
// variables. When metrics.textfile_path is set, counters for every file
// operation are written there for the node_exporter textfile collector.
package main
