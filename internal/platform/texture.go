package platform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/scrimkit/scrim/internal/platform/assets"
	"github.com/scrimkit/scrim/internal/rescache"
)

// Font bundles an uploaded glyph sheet with its layout table. The
// payload of font resources created by FontCreator.
type Font struct {
	Texture uint32
	Atlas   *assets.Atlas
}

// TextureCreator returns a cache creator that resolves ids as image
// paths relative to dir and uploads the decoded pixels to the GL
// context. The payload is the GL texture name as uint32. Creators run
// on the cache caller's goroutine, which for these must be the thread
// owning the GL context.
func TextureCreator(dir string) rescache.Creator {
	return func(id string) (rescache.Resource, error) {
		img, err := assets.LoadImage(filepath.Join(dir, id))
		if err != nil {
			return rescache.Resource{}, err
		}
		b := img.Bounds()
		tex := uploadTexture(img.Pix, b.Dx(), b.Dy())
		return rescache.Resource{
			Payload: tex,
			Size:    int64(len(img.Pix)),
			Destroy: func() { deleteTexture(tex) },
		}, nil
	}
}

// ShaderCreator returns a cache creator that resolves the id "name" to
// the pair dir/name.vert and dir/name.frag, compiles both and links
// them. The payload is the GL program name as uint32.
func ShaderCreator(dir string) rescache.Creator {
	return func(id string) (rescache.Resource, error) {
		src, err := assets.LoadShaderSource(
			filepath.Join(dir, id+".vert"),
			filepath.Join(dir, id+".frag"),
		)
		if err != nil {
			return rescache.Resource{}, err
		}
		program, err := linkProgram(src)
		if err != nil {
			return rescache.Resource{}, fmt.Errorf("shader %s: %w", id, err)
		}
		return rescache.Resource{
			Payload: program,
			Size:    int64(len(src.Vertex) + len(src.Fragment)),
			Destroy: func() { gl.DeleteProgram(program) },
		}, nil
	}
}

// FontCreator returns a cache creator that resolves ids as font file
// paths relative to dir, builds an ASCII atlas at sizePx and uploads
// it. The payload is a *Font.
func FontCreator(dir string, sizePx float64) rescache.Creator {
	return func(id string) (rescache.Resource, error) {
		face, err := assets.LoadFontFace(filepath.Join(dir, id), sizePx)
		if err != nil {
			return rescache.Resource{}, err
		}
		defer face.Close()

		atlas, err := assets.BuildAtlas(face, sizePx)
		if err != nil {
			return rescache.Resource{}, fmt.Errorf("font %s: %w", id, err)
		}
		tex := uploadTexture(atlas.Image.Pix, atlas.W, atlas.H)
		return rescache.Resource{
			Payload: &Font{Texture: tex, Atlas: atlas},
			Size:    int64(len(atlas.Image.Pix)),
			Destroy: func() { deleteTexture(tex) },
		}, nil
	}
}

func uploadTexture(pix []byte, w, h int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func deleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	// gl.Strs requires null-terminated input.
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &infoLog[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(string(infoLog), "\x00\n"))
	}
	return shader, nil
}

func linkProgram(src assets.ShaderSource) (uint32, error) {
	vert, err := compileShader(gl.VERTEX_SHADER, src.Vertex)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	frag, err := compileShader(gl.FRAGMENT_SHADER, src.Fragment)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &infoLog[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(string(infoLog), "\x00\n"))
	}
	return program, nil
}
