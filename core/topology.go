package core

import "fmt"

// Topology is the node layout for one job
type Topology struct {
	Queue  string `json:"queue"`
	Cores  int    `json:"cores"`
	Ppn    int    `json:"ppn"`
	Nodes  int    `json:"nodes"`
	Wasted int    `json:"wasted"`
}

// ResolveTopology maps a core count onto whole nodes of the queue,
// rounding the node count up. The debug system runs everything on a
// single node and ignores the queue.
func ResolveTopology(system *SystemProfile, cores int, queue string) (Topology, error) {
	if cores <= 0 {
		return Topology{}, &InvalidInputError{Cores: cores}
	}
	if system.IsDebug() {
		return Topology{Queue: queue, Cores: cores, Ppn: cores, Nodes: 1}, nil
	}
	ppn, ok := system.Queues[queue]
	if !ok {
		return Topology{}, &UnknownQueueError{
			System: system.Name,
			Queue:  queue,
			Valid:  system.Queues.Names(),
		}
	}
	nodes := cores / ppn
	if cores%ppn != 0 {
		nodes++
	}
	return Topology{
		Queue:  queue,
		Cores:  cores,
		Ppn:    ppn,
		Nodes:  nodes,
		Wasted: (ppn - cores%ppn) % ppn,
	}, nil
}

// Warning is the shell comment printed when nodes are not fully used
func (t Topology) Warning() string {
	return fmt.Sprintf(WasteWarningPattern, t.Cores, t.Nodes, t.Ppn, t.Wasted)
}

func (t Topology) values(walltime string) map[string]interface{} {
	return map[string]interface{}{
		KeyQueue:    t.Queue,
		KeyWalltime: walltime,
		KeyNodes:    t.Nodes,
		KeyPpn:      t.Ppn,
		KeyCores:    t.Cores,
	}
}
