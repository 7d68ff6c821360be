package ledger

import "log"

// Seed loads the demo projects shown on a fresh install. Intended for
// development only; gated by SEED_PROJECTS.
func (l *Ledger) Seed() {
	demo := []ProjectInput{
		{
			Title:       "Desenvolvimento de Website E-commerce",
			Description: "Preciso de um desenvolvedor para criar um website de e-commerce completo com sistema de pagamento.",
			Budget:      "R$ 5.000 - R$ 10.000",
			Deadline:    "2024-02-15",
			Skills:      []string{"React", "Node.js", "MongoDB", "Stripe"},
			PostedBy:    "João Silva",
		},
		{
			Title:       "Design de Logo para Startup",
			Description: "Procuramos um designer criativo para criar um logo moderno e profissional para nossa startup de tecnologia.",
			Budget:      "R$ 1.000 - R$ 3.000",
			Deadline:    "2024-02-01",
			Skills:      []string{"Adobe Illustrator", "Photoshop", "Branding"},
			PostedBy:    "TechStartup Ltda",
		},
	}

	// Insert in reverse so the first demo project ends up at the head.
	var head *Project
	for i := len(demo) - 1; i >= 0; i-- {
		p, err := l.AddProject(demo[i])
		if err != nil {
			log.Printf("seed project failed: %v", err)
			continue
		}
		head = p
	}

	if head != nil {
		_, err := l.AddReply(head.ID, ReplyInput{
			UserID:     "user1",
			UserName:   "Maria Santos",
			Message:    "Olá! Tenho experiência com React e Node.js. Gostaria de saber mais detalhes sobre o projeto.",
			IsBusiness: false,
		})
		if err != nil {
			log.Printf("seed reply failed: %v", err)
		}
	}
}
