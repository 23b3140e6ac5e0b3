package main

const (
	aboutImagePath = "/images/about-image.png"
	aboutImageSize = 500
)

var AboutIntro = []string{
	`Hi, I'm a passionate IT enthusiast with a strong foundation and a growing specialization in cloud
	infrastructure, DevOps, and IT automation.`,

	`After completing my Master's in Electrical Engineering and IT with a focus on automation, I started my
	professional journey as a software engineer at congatec GmbH. There, I developed and tested low-level
	firmware solutions and diagnostic tools, gaining valuable experience with Python, Linux, and systems programming.`,

	`Over time, I discovered a deeper interest in scalable and resilient IT infrastructures. To pursue this
	direction, I independently upskilled in AWS, Terraform, Kubernetes, and CI/CD practices. I earned the AWS
	Certified Solutions Architect – Associate certification and began applying these skills to personal projects
	and automated workflows.`,

	`I thrive in environments where automation, observability, and collaboration come together to create
	efficient and reliable systems. I enjoy solving complex problems, learning new technologies, and being part
	of communities that value openness and growth.`,

	`Currently, I'm looking to deepen my expertise in DevOps engineering, with a special interest in
	cloud-native tools, infrastructure as code, and modern data center solutions.`,
}
