package economy

// EnergyPackage is a fixed bundle of energy sold for GOLD.
type EnergyPackage struct {
	Key      string `json:"key"`
	GoldCost int64  `json:"gold_cost"`
	Energy   int    `json:"energy"`
}

// EnergyPackages returns the energy shop keyed by package name.
func EnergyPackages() map[string]EnergyPackage {
	return map[string]EnergyPackage{
		"small":  {Key: "small", GoldCost: 40, Energy: 80},
		"medium": {Key: "medium", GoldCost: 90, Energy: 200},
		"large":  {Key: "large", GoldCost: 180, Energy: 450},
	}
}

// EnergyPackageByKey resolves a package key, defaulting to small.
func EnergyPackageByKey(key string) EnergyPackage {
	if pkg, ok := EnergyPackages()[key]; ok {
		return pkg
	}
	return EnergyPackages()["small"]
}
