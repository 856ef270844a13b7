// Package scenefile loads Wavefront OBJ geometry and materials into the
// triangle list the radiosity solver operates on. It only keeps what a
// radiosity scene needs: no textures, no instancing, no camera block, just
// triangles with diffuse and emissive colors.
package scenefile

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/types"
)

// defaultDiffuse is used for faces that never select a material.
var defaultDiffuse = geom.RGB(0.7, 0.7, 0.7)

type material struct {
	kd geom.Color
	ke geom.Color
}

// Load parses the OBJ file at path, resolving any mtllib directive relative
// to path's directory, and returns the flattened triangle list. Faces with
// more than 3 vertices are rejected; the loader expects a triangulated
// export.
func Load(path string) ([]geom.Triangle, error) {
	l := &loader{
		dir:        filepath.Dir(path),
		matByName:  make(map[string]material),
		defaultMat: material{kd: defaultDiffuse},
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "scenefile: opening %s", path)
	}
	defer f.Close()

	if err := l.parseObj(path, f); err != nil {
		return nil, err
	}

	return l.triangles, nil
}

type loader struct {
	dir string

	vertices []types.Vec3
	normals  []types.Vec3

	matByName  map[string]material
	defaultMat material
	curMat     *material

	triangles []geom.Triangle
}

func (l *loader) parseObj(path string, f *os.File) error {
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "mtllib":
			err = l.loadMaterialLib(fields)
		case "usemtl":
			err = l.selectMaterial(fields)
		case "v":
			var v types.Vec3
			v, err = parseVec3(fields)
			l.vertices = append(l.vertices, v)
		case "vn":
			var v types.Vec3
			v, err = parseVec3(fields)
			l.normals = append(l.normals, v)
		case "f":
			err = l.parseFace(fields)
		}
		if err != nil {
			return errors.Wrapf(err, "scenefile: %s:%d", path, lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scenefile: reading %s", path)
	}
	return nil
}

func (l *loader) loadMaterialLib(fields []string) error {
	if len(fields) != 2 {
		return errors.Errorf("mtllib: expected 1 argument, got %d", len(fields)-1)
	}

	libPath := filepath.Join(l.dir, fields[1])
	f, err := os.Open(libPath)
	if err != nil {
		return errors.Wrapf(err, "mtllib %s", fields[1])
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var curName string
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		mFields := strings.Fields(scanner.Text())
		if len(mFields) == 0 || strings.HasPrefix(mFields[0], "#") {
			continue
		}

		switch mFields[0] {
		case "newmtl":
			if len(mFields) != 2 {
				return errors.Errorf("%s:%d: newmtl: expected 1 argument", libPath, lineNum)
			}
			curName = mFields[1]
			l.matByName[curName] = material{}
		case "Kd", "Ke":
			if curName == "" {
				return errors.Errorf("%s:%d: %s without a preceding newmtl", libPath, lineNum, mFields[0])
			}
			v, err := parseVec3(mFields)
			if err != nil {
				return errors.Wrapf(err, "%s:%d", libPath, lineNum)
			}
			m := l.matByName[curName]
			if mFields[0] == "Kd" {
				m.kd = v
			} else {
				m.ke = v
			}
			l.matByName[curName] = m
		}
	}
	return scanner.Err()
}

func (l *loader) selectMaterial(fields []string) error {
	if len(fields) != 2 {
		return errors.Errorf("usemtl: expected 1 argument, got %d", len(fields)-1)
	}
	m, ok := l.matByName[fields[1]]
	if !ok {
		return errors.Errorf("usemtl: undefined material %q", fields[1])
	}
	l.curMat = &m
	return nil
}

func (l *loader) parseFace(fields []string) error {
	if len(fields) != 4 {
		return errors.Errorf("f: only triangulated faces are supported (got %d vertices, want 3)", len(fields)-1)
	}

	var verts [3]types.Vec3
	for i := 0; i < 3; i++ {
		idxToken := strings.SplitN(fields[i+1], "/", 2)[0]
		idx, err := faceIndex(idxToken, len(l.vertices))
		if err != nil {
			return errors.Wrapf(err, "f: vertex %d", i)
		}
		verts[i] = l.vertices[idx]
	}

	mat := l.defaultMat
	if l.curMat != nil {
		mat = *l.curMat
	}

	l.triangles = append(l.triangles, geom.NewTriangle(verts[0], verts[1], verts[2], mat.kd, mat.ke))
	return nil
}

// faceIndex resolves a 1-based (or negative, counting from the end) OBJ
// index token into a 0-based slice offset.
func faceIndex(token string, listLen int) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, err
	}

	var idx int
	if n < 0 {
		idx = listLen + n
	} else {
		idx = n - 1
	}
	if idx < 0 || idx >= listLen {
		return 0, errors.Errorf("index %d out of bounds (have %d)", n, listLen)
	}
	return idx, nil
}

func parseVec3(fields []string) (types.Vec3, error) {
	if len(fields) < 4 {
		return types.Vec3{}, errors.Errorf("%s: expected 3 arguments, got %d", fields[0], len(fields)-1)
	}
	var v types.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}
