package export

import (
	"io"
	"os"
	"strings"

	"mini-voxel/internal/meshing"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ZstdSuffix marks output paths that are written zstd-compressed.
const ZstdSuffix = ".zst"

// Document converts m into a single-mesh glTF document with POSITION and
// TEXCOORD_0 attributes and uint32 indices. An empty mesh yields a
// document with an empty scene.
func Document(m *meshing.MeshBuffer) (*gltf.Document, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid mesh")
	}
	doc := gltf.NewDocument()
	if m.Empty() {
		doc.Buffers = nil
		return doc, nil
	}

	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v
	}
	uvs := make([][2]float32, len(m.UVs))
	for i, uv := range m.UVs {
		uvs[i] = uv
	}

	indices := modeler.WriteIndices(doc, m.Indices)
	pos := modeler.WritePosition(doc, positions)
	tex := modeler.WriteTextureCoord(doc, uvs)

	doc.Meshes = []*gltf.Mesh{{
		Name: "chunk",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]uint32{"POSITION": pos, "TEXCOORD_0": tex},
			Mode:       gltf.PrimitiveTriangles,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "chunk", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// WriteGLB encodes m as binary glTF.
func WriteGLB(w io.Writer, m *meshing.MeshBuffer) error {
	doc, err := Document(m)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encode glb")
	}
	return nil
}

// ReadGLB decodes a binary glTF document produced by WriteGLB.
func ReadGLB(r io.Reader) (*gltf.Document, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "decode glb")
	}
	return doc, nil
}

// MeshFromDocument reads back the first primitive of the first mesh.
func MeshFromDocument(doc *gltf.Document) (*meshing.MeshBuffer, error) {
	out := meshing.NewMeshBuffer(0)
	if len(doc.Meshes) == 0 {
		return out, nil
	}
	if len(doc.Meshes[0].Primitives) == 0 {
		return nil, errors.New("mesh has no primitives")
	}
	prim := doc.Meshes[0].Primitives[0]
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, errors.New("primitive has no POSITION attribute")
	}
	uvIdx, ok := prim.Attributes["TEXCOORD_0"]
	if !ok {
		return nil, errors.New("primitive has no TEXCOORD_0 attribute")
	}
	if prim.Indices == nil {
		return nil, errors.New("primitive is not indexed")
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, errors.Wrap(err, "read positions")
	}
	uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
	if err != nil {
		return nil, errors.Wrap(err, "read uvs")
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return nil, errors.Wrap(err, "read indices")
	}

	for _, p := range positions {
		out.Vertices = append(out.Vertices, p)
	}
	for _, uv := range uvs {
		out.UVs = append(out.UVs, uv)
	}
	out.Indices = append(out.Indices, indices...)
	return out, nil
}

// GLBFile is a mesh consumer that writes each mesh to Path, compressing it
// with zstd when Path ends in ".zst".
type GLBFile struct {
	Path string
}

// ConsumeMesh writes m to f.Path.
func (f GLBFile) ConsumeMesh(m *meshing.MeshBuffer) (err error) {
	out, err := os.Create(f.Path)
	if err != nil {
		return errors.Wrap(err, "create mesh file")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close mesh file")
		}
	}()

	if !strings.HasSuffix(f.Path, ZstdSuffix) {
		return WriteGLB(out, m)
	}

	zw, err := zstd.NewWriter(out)
	if err != nil {
		return errors.Wrap(err, "create zstd writer")
	}
	if err := WriteGLB(zw, m); err != nil {
		zw.Close()
		return err
	}
	return errors.Wrap(zw.Close(), "flush zstd stream")
}

// OpenGLB reads a mesh file written by GLBFile.
func OpenGLB(path string) (*meshing.MeshBuffer, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open mesh file")
	}
	defer in.Close()

	var r io.Reader = in
	if strings.HasSuffix(path, ZstdSuffix) {
		zr, err := zstd.NewReader(in)
		if err != nil {
			return nil, errors.Wrap(err, "create zstd reader")
		}
		defer zr.Close()
		r = zr
	}

	doc, err := ReadGLB(r)
	if err != nil {
		return nil, err
	}
	return MeshFromDocument(doc)
}
