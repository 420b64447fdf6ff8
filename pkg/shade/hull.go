package shade

var hullLayers = []Layer{
	{
		Name: "highlight",
		Mask: func(in Input) float64 {
			return (in.Normal.Y + 1) * 0.5
		},
		Color:     New(200, 220, 255),
		Threshold: 0.7,
	},
}

var hullLight = Lighting{Diffuse: 0.8, Ambient: 0.4, Max: 1}

func hull(in Input) Color {
	c := Compose(New(100, 150, 255), in, hullLayers)
	return hullLight.Apply(c, in.Normal, in.Light)
}
