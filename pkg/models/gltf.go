package models

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/vitrine/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into a Model.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	SmoothNormals    bool

	// OnProgress, when set, is called as the file is read.
	OnProgress ProgressFunc
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file with default options.
func LoadGLB(path string) (*Model, error) {
	return NewGLTFLoader().Load(context.Background(), path)
}

// Load reads and parses a GLTF or GLB file. The default scene's node tree
// is flattened into model space with each node's transform applied.
func (l *GLTFLoader) Load(ctx context.Context, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	var total int64
	if info, err := f.Stat(); err == nil {
		total = info.Size()
	}

	r := newProgressReader(&contextReader{ctx: ctx, r: f}, total, l.OnProgress)

	doc := new(gltf.Document)
	dec := gltf.NewDecoderFS(r, os.DirFS(filepath.Dir(path)))
	if err := dec.Decode(doc); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(path), ctxErr)
		}
		return nil, fmt.Errorf("decode gltf: %w", err)
	}

	model, err := l.build(doc, path)
	if err != nil {
		return nil, err
	}
	if model.TriangleCount() == 0 {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), ErrNoGeometry)
	}
	return model, nil
}

// contextReader stops reading once its context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// build walks the document and produces the model tree.
func (l *GLTFLoader) build(doc *gltf.Document, path string) (*Model, error) {
	b := &builder{
		loader: l,
		doc:    doc,
		model:  NewModel(filepath.Base(path)),
		images: newImageCache(doc, filepath.Dir(path)),
	}

	roots, ok := sceneRoots(doc)
	if !ok {
		// No scene: show every mesh untransformed.
		for i := range doc.Meshes {
			if err := b.addMesh(i, math3d.Identity()); err != nil {
				return nil, err
			}
		}
	} else {
		for _, n := range roots {
			if err := b.walk(n, math3d.Identity(), map[int]bool{}); err != nil {
				return nil, err
			}
		}
	}

	b.model.Texture = b.images.first()
	return b.model, nil
}

// sceneRoots returns the root nodes of the default scene.
func sceneRoots(doc *gltf.Document) ([]int, bool) {
	if len(doc.Scenes) == 0 {
		return nil, false
	}
	idx := 0
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		idx = *doc.Scene
	}
	return doc.Scenes[idx].Nodes, true
}

type builder struct {
	loader *GLTFLoader
	doc    *gltf.Document
	model  *Model
	images *imageCache
}

// walk visits a node and its children, accumulating world transforms.
// path guards against malformed documents with node cycles.
func (b *builder) walk(nodeIdx int, parent math3d.Mat4, path map[int]bool) error {
	if nodeIdx < 0 || nodeIdx >= len(b.doc.Nodes) || path[nodeIdx] {
		return nil
	}
	path[nodeIdx] = true
	defer delete(path, nodeIdx)

	node := b.doc.Nodes[nodeIdx]
	world := parent.Mul(nodeTransform(node))

	if node.Mesh != nil {
		if err := b.addMesh(*node.Mesh, world); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := b.walk(child, world, path); err != nil {
			return err
		}
	}
	return nil
}

// nodeTransform returns the node's local matrix, from either its matrix
// or its TRS properties.
func nodeTransform(node *gltf.Node) math3d.Mat4 {
	m := node.MatrixOrDefault()
	if m != [16]float64(math3d.Identity()) {
		return math3d.FromArray(m)
	}
	t := node.TranslationOrDefault()
	s := node.ScaleOrDefault()
	return math3d.Compose(
		math3d.V3(t[0], t[1], t[2]),
		node.RotationOrDefault(),
		math3d.V3(s[0], s[1], s[2]),
	)
}

// addMesh extracts a GLTF mesh, transformed by world, into the model.
func (b *builder) addMesh(meshIdx int, world math3d.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	m := b.doc.Meshes[meshIdx]
	mesh := NewMesh(m.Name)

	normalMat := world.NormalMatrix()
	// A mirroring transform flips triangle orientation.
	mirrored := world.Determinant() < 0
	materials := map[int]int{}

	for _, prim := range m.Primitives {
		if err := b.addPrimitive(mesh, prim, world, normalMat, mirrored, materials); err != nil {
			return fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if len(mesh.Faces) == 0 {
		return nil
	}

	if b.loader.CalculateNormals && !mesh.hasNormals() {
		if b.loader.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	mesh.CalculateBounds()
	b.model.Meshes = append(b.model.Meshes, mesh)
	return nil
}

// accessor returns accessor idx, or an error when the document has no
// such accessor.
func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

// addPrimitive appends one triangle primitive to mesh.
func (b *builder) addPrimitive(mesh *Mesh, prim *gltf.Primitive, world, normalMat math3d.Mat4, mirrored bool, materials map[int]int) error {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		// Skip non-triangle primitives (lines, points, etc)
		return nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	acc, err := b.accessor(posIdx)
	if err != nil {
		return err
	}
	positions, err := modeler.ReadPosition(b.doc, acc, nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acc, err = b.accessor(normIdx); err != nil {
			return err
		}
		normals, err = modeler.ReadNormal(b.doc, acc, nil)
		if err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acc, err = b.accessor(uvIdx); err != nil {
			return err
		}
		uvs, err = modeler.ReadTextureCoord(b.doc, acc, nil)
		if err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	matIdx := b.material(mesh, prim, materials)
	baseVertex := len(mesh.Vertices)

	for i, p := range positions {
		v := MeshVertex{
			Position: world.MulVec3(math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))),
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = normalMat.MulVec3Dir(math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))).Normalize()
		}
		if i < len(uvs) {
			// GLTF uses top-left origin (V=0 at top), flip V for bottom-left origin
			v.UV = math3d.V2(float64(uvs[i][0]), 1.0-float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	var indices []uint32
	if prim.Indices != nil {
		if acc, err = b.accessor(*prim.Indices); err != nil {
			return err
		}
		indices, err = modeler.ReadIndices(b.doc, acc, nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		// No indices, assume sequential triangles
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	// GLTF uses CCW winding for front faces, but the rasterizer uses CW
	// (due to the Y-flip in screen space), so the winding is reversed here
	// unless a mirroring transform already reversed it.
	for i := 0; i+2 < len(indices); i += 3 {
		a, c, d := int(indices[i]), int(indices[i+1]), int(indices[i+2])
		if a >= len(positions) || c >= len(positions) || d >= len(positions) {
			return fmt.Errorf("index out of range in triangle %d", i/3)
		}
		face := Face{Material: matIdx}
		if mirrored {
			face.V = [3]int{baseVertex + a, baseVertex + c, baseVertex + d}
		} else {
			face.V = [3]int{baseVertex + a, baseVertex + d, baseVertex + c}
		}
		mesh.Faces = append(mesh.Faces, face)
	}

	return nil
}

// material returns the mesh-local material index for a primitive, adding
// the material to the mesh the first time it is seen.
func (b *builder) material(mesh *Mesh, prim *gltf.Primitive, seen map[int]int) int {
	key := -1
	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(b.doc.Materials) {
		key = *prim.Material
	}
	if idx, ok := seen[key]; ok {
		return idx
	}

	mat := DefaultMaterial()
	if key >= 0 {
		mat = b.convertMaterial(b.doc.Materials[key])
	}

	mesh.Materials = append(mesh.Materials, mat)
	idx := len(mesh.Materials) - 1
	seen[key] = idx
	return idx
}

// convertMaterial maps a glTF material onto Material.
func (b *builder) convertMaterial(gm *gltf.Material) Material {
	mat := Material{
		Name:      gm.Name,
		BaseColor: [4]float64{1, 1, 1, 1},
		Roughness: 1,
		Metallic:  1,
	}

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		mat.BaseColor = pbr.BaseColorFactorOrDefault()
		mat.Metallic = pbr.MetallicFactorOrDefault()
		mat.Roughness = pbr.RoughnessFactorOrDefault()
		if pbr.BaseColorTexture != nil {
			mat.BaseMap = b.images.forTexture(pbr.BaseColorTexture.Index)
		}
	}

	if gm.AlphaMode != gltf.AlphaBlend {
		mat.BaseColor[3] = 1
	}
	mat.SetOpacity(1)
	return mat
}

// imageCache decodes each glTF image at most once.
type imageCache struct {
	doc     *gltf.Document
	dir     string
	decoded map[int]image.Image
	order   []int
}

func newImageCache(doc *gltf.Document, dir string) *imageCache {
	return &imageCache{doc: doc, dir: dir, decoded: map[int]image.Image{}}
}

// forTexture returns the decoded source image of a texture, or nil.
func (c *imageCache) forTexture(texIdx int) image.Image {
	if texIdx < 0 || texIdx >= len(c.doc.Textures) {
		return nil
	}
	src := c.doc.Textures[texIdx].Source
	if src == nil {
		return nil
	}
	return c.image(*src)
}

func (c *imageCache) image(idx int) image.Image {
	if img, ok := c.decoded[idx]; ok {
		return img
	}
	var img image.Image
	if data := c.imageData(idx); len(data) > 0 {
		if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			img = decoded
		}
	}
	c.decoded[idx] = img
	if img != nil {
		c.order = append(c.order, idx)
	}
	return img
}

// imageData returns the encoded bytes of image idx, embedded or external.
func (c *imageCache) imageData(idx int) []byte {
	if idx < 0 || idx >= len(c.doc.Images) {
		return nil
	}
	img := c.doc.Images[idx]
	if img.BufferView != nil {
		if *img.BufferView < 0 || *img.BufferView >= len(c.doc.BufferViews) {
			return nil
		}
		bv := c.doc.BufferViews[*img.BufferView]
		if bv.Buffer < 0 || bv.Buffer >= len(c.doc.Buffers) {
			return nil
		}
		buf := c.doc.Buffers[bv.Buffer]
		end := bv.ByteOffset + bv.ByteLength
		if buf.Data == nil || bv.ByteOffset < 0 || end > len(buf.Data) {
			return nil
		}
		return buf.Data[bv.ByteOffset:end]
	}
	if img.URI != "" {
		data, err := os.ReadFile(filepath.Join(c.dir, img.URI))
		if err == nil {
			return data
		}
	}
	return nil
}

// first returns the first successfully decoded image. Images only
// referenced by unused textures are decoded here as a fallback.
func (c *imageCache) first() image.Image {
	if len(c.order) > 0 {
		return c.decoded[c.order[0]]
	}
	for i := range c.doc.Images {
		if img := c.image(i); img != nil {
			return img
		}
	}
	return nil
}
