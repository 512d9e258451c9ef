package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// writeGLB encodes the triangle soup as a single-mesh binary glTF document.
// Faces keep their flat normals; vertices are not deduplicated.
func writeGLB(path string, triangles []*sdf.Triangle3) error {
	positions := make([][3]float32, 0, len(triangles)*3)
	normals := make([][3]float32, 0, len(triangles)*3)
	indices := make([]uint32, 0, len(triangles)*3)

	for i, tri := range triangles {
		n := tri.Normal()
		fn := [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		for j := 0; j < 3; j++ {
			v := tri[j]
			positions = append(positions, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
			normals = append(normals, fn)
			indices = append(indices, uint32(i*3+j))
		}
	}

	doc := gltf.NewDocument()
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        "fabric",
		DoubleSided: true,
	})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "garment",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			},
			Indices:  gltf.Index(modeler.WriteIndices(doc, indices)),
			Material: gltf.Index(0),
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "garment", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return gltf.SaveBinary(doc, path)
}
