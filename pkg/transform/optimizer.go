package transform

import (
	"image"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Optimizer runs a best-effort lossless compression pass over an
// already transformed temp file using external tools discovered on
// PATH. Formats without an available tool are left untouched.
type Optimizer struct {
	tools map[string][]string
}

var optimizerCommands = map[string][]string{
	"jpeg": {"jpegtran", "-optimize", "-copy", "none", "-outfile"},
	"png":  {"optipng", "-quiet"},
	"gif":  {"gifsicle", "-b", "-O2"},
}

func NewOptimizer() *Optimizer {
	tools := make(map[string][]string)

	for format, command := range optimizerCommands {
		if _, err := exec.LookPath(command[0]); err != nil {
			log.Debug().Str("binary", command[0]).Msg("optimizer binary not found")
			continue
		}

		log.Debug().Str("binary", command[0]).Msg("optimizer binary found")
		tools[format] = command
	}

	return &Optimizer{tools}
}

func (o *Optimizer) Optimize(file string) error {
	format, err := detectFormat(file)
	if err != nil {
		return err
	}

	command, found := o.tools[format]
	if !found {
		return nil
	}

	args := append(append([]string{}, command[1:]...), file)
	if format == "jpeg" {
		// jpegtran needs the output target right after -outfile
		args = append(args, file)
	}

	out, err := exec.Command(command[0], args...).CombinedOutput()
	if err != nil {
		log.Error().Bytes("optimizerOutput", out).Str("binary", command[0]).Msg("optimizer command failed")
		return err
	}

	return nil
}

func detectFormat(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", err
	}

	return format, nil
}
