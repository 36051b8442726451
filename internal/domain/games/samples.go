package games

// SampleCatalog returns the starter games loaded by `catalogctl seed`.
func SampleCatalog() []NewGame {
	return []NewGame{
		{
			Title:       "Zoochosis",
			Description: "A psychological horror game about captive animals developing eerie human-like traits.",
			Category:    "horror",
			ImageURL:    "/uploads/sample1.jpg",
			DownloadURL: "https://example.com/downloads/zoochosis.zip",
			FileSize:    "2.7 GB",
			ReleaseDate: "2023-04-15",
			Featured:    true,
		},
		{
			Title:       "Orbital Mercenary",
			Description: "A space combat simulation where you play a gun-for-hire between mega-corporations.",
			Category:    "action",
			ImageURL:    "/uploads/sample2.jpg",
			DownloadURL: "https://example.com/downloads/orbital-mercenary.zip",
			FileSize:    "3.4 GB",
			ReleaseDate: "2023-06-22",
		},
		{
			Title:       "Pixel Kingdom",
			Description: "A retro-styled RPG where the rightful heir reclaims the throne from a shadow cult.",
			Category:    "rpg",
			ImageURL:    "/uploads/sample3.jpg",
			DownloadURL: "https://example.com/downloads/pixel-kingdom.zip",
			FileSize:    "1.2 GB",
			ReleaseDate: "2023-02-10",
			Featured:    true,
		},
	}
}
