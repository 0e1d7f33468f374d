// Package osm models raw geographic-query elements (nodes, ways,
// relations) and their classification into the categorical views the
// store maintains. Elements reference each other only by numeric ID;
// the (type, id) pair is the true unique key.
package osm
