package chemjson

//Package chemjson implements serializacion and unserialization of
//nearmol universes. Its planned use is the communication of nearmol
//programs with other, independent programs, which can be written in
//languages other than Go, as long as those languages implement a
//way of serializing and unserializing JSON data.
//A universe is transmitted as a stream of JSON objects, one per line: a header
//with the number of rows of each table, followed by the rows of the atom,
//molecule, frame and pair tables, in that order.
//chemjson also implements a compact per-frame topology, used as the header
//of stf trajectories, and the transmision of information about a neighbor
//search back to the calling program.
