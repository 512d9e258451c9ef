// Package mesh renders a pattern document as a binary glTF asset. Each panel
// is extruded into a thin solid, placed by its stored translation and
// rotation, and the union of all panels is tessellated with marching cubes.
package mesh
