/*
Package neo4jstore persists thermodynamic states in a Neo4j graph.

Every named state is a (:State) node holding its substance, the pair of
properties that fixed it, its phase and the canonical value of every defined
property. A process taking a working fluid from one state to another (e.g. an
isentropic compression) is a [:PROCESS] relationship between their nodes, so a
thermodynamic cycle is a closed path of states:

	(:State {name: "1"})-[:PROCESS {kind: "isentropic compression"}]->(:State {name: "2"})

Call BootstrapDatabase once per database before using a Store.
*/
package neo4jstore
