package message

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Pool is a named, non-empty, ordered list of interchangeable text
// fragments. Pools are configuration data: immutable once loaded.
type Pool []string

// Pick draws one fragment uniformly at random. Draws are independent
// across calls; the same fragment may repeat.
func (p Pool) Pick(rng *rand.Rand) string {
	if len(p) == 0 {
		return ""
	}
	return p[rng.Intn(len(p))]
}

// PickExcluding draws a fragment whose index is not in used, so a caller
// tracking its recent picks can avoid sending visually-identical text twice
// in a row. When every index is used the exclusion is ignored. Returns the
// chosen index alongside the fragment.
func (p Pool) PickExcluding(rng *rand.Rand, used map[int]bool) (int, string) {
	if len(p) == 0 {
		return -1, ""
	}
	var free []int
	for i := range p {
		if !used[i] {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		idx := rng.Intn(len(p))
		return idx, p[idx]
	}
	idx := free[rng.Intn(len(free))]
	return idx, p[idx]
}

// Pools holds every fragment pool the composer draws from. Topic intro
// fragments must contain one %s placeholder for the order reference.
type Pools struct {
	Greetings   Pool `yaml:"greetings"`
	TopicIntros Pool `yaml:"topic_intros"`
	Transitions Pool `yaml:"transitions"`
	Closings    Pool `yaml:"closings"`
	Agents      Pool `yaml:"agents"`
}

// DefaultPools returns the built-in fragment pools.
func DefaultPools() *Pools {
	return &Pools{
		Greetings: Pool{
			"¡Hola",
			"Buenas",
			"¡Buenos días",
			"¡Muy buenas",
		},
		TopicIntros: Pool{
			"Te escribo por tu pedido #%s.",
			"Me pongo en contacto contigo por tu pedido #%s.",
			"Tenemos novedades de tu pedido #%s.",
		},
		Transitions: Pool{
			"Te escribimos de nuevo",
			"Volvemos a escribirte",
			"Te contactamos otra vez",
			"Retomamos tu pedido",
		},
		Closings: Pool{
			"¡Gracias por tu compra!",
			"¡Muchas gracias!",
			"Gracias por confiar en nosotros.",
			"Un saludo.",
		},
		Agents: Pool{
			"Laura",
			"Marta",
			"Lucía",
			"Carmen",
		},
	}
}

// LoadPools reads a yaml pools file and overlays it on the defaults. Each
// pool named in the file replaces the default pool wholesale; pools left
// out keep their defaults. A missing file yields the defaults.
func LoadPools(path string) (*Pools, error) {
	pools := DefaultPools()
	if path == "" {
		return pools, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return pools, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pools file: %w", err)
	}

	var override Pools
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse pools file: %w", err)
	}

	if len(override.Greetings) > 0 {
		pools.Greetings = override.Greetings
	}
	if len(override.TopicIntros) > 0 {
		pools.TopicIntros = override.TopicIntros
	}
	if len(override.Transitions) > 0 {
		pools.Transitions = override.Transitions
	}
	if len(override.Closings) > 0 {
		pools.Closings = override.Closings
	}
	if len(override.Agents) > 0 {
		pools.Agents = override.Agents
	}

	return pools, nil
}
